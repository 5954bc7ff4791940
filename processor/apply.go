package processor

import (
	"errors"
	"fmt"
)

const defaultApplyBlockSize = 512

// Apply runs a processor over a whole buffer offline: it prepares the
// processor for the buffer's layout, then walks the audio in blocks of
// blockSize samples (the final block may be shorter). A blockSize of zero
// selects a default of 512.
func Apply(p Processor, data [][]float32, sampleRate float64, blockSize int) error {
	if p == nil {
		return errors.New("apply: nil processor")
	}
	if blockSize < 0 {
		return fmt.Errorf("apply: block size must be >= 0: %d", blockSize)
	}
	if blockSize == 0 {
		blockSize = defaultApplyBlockSize
	}
	if len(data) == 0 {
		return nil
	}

	length := len(data[0])
	for ch, channel := range data {
		if len(channel) != length {
			return fmt.Errorf("apply: channel %d has %d samples, want %d",
				ch, len(channel), length)
		}
	}
	if length == 0 {
		return nil
	}

	spec := Spec{
		SampleRate:   sampleRate,
		MaxBlockSize: blockSize,
		NumChannels:  len(data),
	}
	if err := p.Prepare(spec); err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	block := make(Block, len(data))
	for offset := 0; offset < length; offset += blockSize {
		end := min(offset+blockSize, length)
		for ch := range data {
			block[ch] = data[ch][offset:end]
		}
		p.Process(block)
	}
	return nil
}
