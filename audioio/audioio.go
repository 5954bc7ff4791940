// Package audioio reads and writes audio buffers as PCM WAV files.
//
// Samples cross the file boundary as non-interleaved float32 channels in
// the nominal [-1, 1] range, matching the block layout used by the
// processing path. Integer PCM conversion happens only here.
package audioio

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Buffer holds decoded audio as one slice per channel.
type Buffer struct {
	Data           [][]float32
	SampleRate     float64
	SourceBitDepth int
}

// NumChannels returns the channel count.
func (b *Buffer) NumChannels() int {
	return len(b.Data)
}

// NumFrames returns the per-channel sample count.
func (b *Buffer) NumFrames() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Decode reads a PCM WAV file into a float buffer.
func Decode(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("not a valid WAV file: %q", path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	format := pcm.Format
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("missing format information: %q", path)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("unsupported bit depth %d: %q", bitDepth, path)
	}
	scale := 1.0 / float64(int64(1)<<(bitDepth-1))

	channels := format.NumChannels
	frames := len(pcm.Data) / channels
	buf := &Buffer{
		Data:           make([][]float32, channels),
		SampleRate:     float64(format.SampleRate),
		SourceBitDepth: bitDepth,
	}
	for ch := 0; ch < channels; ch++ {
		buf.Data[ch] = make([]float32, frames)
	}
	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			buf.Data[ch][i] = float32(float64(pcm.Data[base+ch]) * scale)
		}
	}
	return buf, nil
}

// Encode writes buf to path as PCM WAV with the given bit depth (16 or 24).
// Samples outside [-1, 1] are clamped.
func Encode(path string, buf *Buffer, bitDepth int) error {
	if buf == nil || len(buf.Data) == 0 {
		return fmt.Errorf("nothing to encode")
	}
	if buf.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %f", buf.SampleRate)
	}
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("bit depth must be 16 or 24: %d", bitDepth)
	}

	frames := len(buf.Data[0])
	for ch, data := range buf.Data {
		if len(data) != frames {
			return fmt.Errorf("channel %d has %d frames, want %d", ch, len(data), frames)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	channels := len(buf.Data)
	sampleRate := int(math.Round(buf.SampleRate))
	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, 1)

	maxVal := float64(int64(1)<<(bitDepth-1) - 1)
	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := 0; ch < channels; ch++ {
			v := float64(buf.Data[ch][i])
			if v > 1 {
				v = 1
			} else if v < -1 {
				v = -1
			}
			data[base+ch] = int(math.Round(v * maxVal))
		}
	}

	err = enc.Write(&audio.IntBuffer{
		Data: data,
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		SourceBitDepth: bitDepth,
	})
	if err != nil {
		_ = enc.Close()
		_ = f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %q: %w", path, err)
	}
	return nil
}
