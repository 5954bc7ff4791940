package processor

import (
	"fmt"

	"github.com/cwbudde/algo-pedalboard/dsp/core"
	"github.com/cwbudde/algo-pedalboard/dsp/effects"
)

// Per-channel tuning spread in samples, the classic Freeverb stereo offset.
const reverbChannelSpread = 23

// reverbProcessor runs one comb/allpass network per channel and blends the
// wet outputs across channels according to the width parameter: at width 1
// every channel keeps its own decorrelated tail, at width 0 all channels
// share the same mono tail.
//
// Parameters: 0 room size, 1 damping, 2 wet, 3 dry, 4 width (all direct).
type reverbProcessor struct {
	params  parameterSet
	applied []float32

	spec     Spec
	prepared bool

	kernels []*effects.Reverb
	dry     [][]float64
	wet     [][]float64

	wetGain   float64
	dryGain   float64
	widthGain float64
}

func newReverbProcessor() (Processor, error) {
	defaults := []float32{0.5, 0.5, 0.33, 1, 1}
	return &reverbProcessor{
		params:  newParameterSet(defaults),
		applied: make([]float32, len(defaults)),
	}, nil
}

func (r *reverbProcessor) Name() string { return "Reverb" }

func (r *reverbProcessor) NumParameters() int { return r.params.count() }

func (r *reverbProcessor) Parameter(index int) float32 { return r.params.get(index) }

func (r *reverbProcessor) SetParameter(index int, value float32) { r.params.set(index, value) }

func (r *reverbProcessor) Prepare(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("prepare Reverb: %w", err)
	}
	if r.prepared && spec == r.spec {
		return nil
	}

	kernels := make([]*effects.Reverb, spec.NumChannels)
	for ch := range kernels {
		kernel, err := effects.NewReverb(spec.SampleRate,
			effects.WithReverbTuningOffset(ch*reverbChannelSpread))
		if err != nil {
			return fmt.Errorf("prepare Reverb: %w", err)
		}
		kernels[ch] = kernel
	}

	r.spec = spec
	r.kernels = kernels
	r.dry = makeScratch(spec.NumChannels, spec.MaxBlockSize)
	r.wet = makeScratch(spec.NumChannels, spec.MaxBlockSize)
	r.prepared = true

	r.params.snapshotInto(r.applied)
	r.applyParams()
	return nil
}

func (r *reverbProcessor) Process(block Block) {
	if !r.prepared {
		return
	}
	if r.params.snapshotInto(r.applied) {
		r.applyParams()
	}

	channels := min(len(block), len(r.kernels))
	if channels == 0 {
		return
	}
	n := min(len(block[0]), len(r.dry[0]))

	for ch := 0; ch < channels; ch++ {
		dry := r.dry[ch][:n]
		wet := r.wet[ch][:n]
		core.Widen(dry, block[ch][:n])
		for i, v := range dry {
			wet[i] = r.kernels[ch].ProcessWet(v)
		}
	}

	if channels == 1 {
		dry, wet := r.dry[0], r.wet[0]
		for i := 0; i < n; i++ {
			out := r.dryGain*dry[i] + r.wetGain*wet[i]
			block[0][i] = float32(out)
		}
		return
	}

	// Width blends each channel's tail with the average of the others.
	same := r.wetGain * (1 + r.widthGain) / 2
	cross := r.wetGain * (1 - r.widthGain) / 2 / float64(channels-1)

	for i := 0; i < n; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += r.wet[ch][i]
		}
		for ch := 0; ch < channels; ch++ {
			own := r.wet[ch][i]
			out := r.dryGain*r.dry[ch][i] + same*own + cross*(sum-own)
			block[ch][i] = float32(out)
		}
	}
}

func (r *reverbProcessor) Reset() {
	for _, kernel := range r.kernels {
		kernel.Reset()
	}
}

func (r *reverbProcessor) applyParams() {
	room := clamp01(r.applied[0])
	damp := clamp01(r.applied[1])
	r.wetGain = clamp01(r.applied[2])
	r.dryGain = clamp01(r.applied[3])
	r.widthGain = clamp01(r.applied[4])

	for _, kernel := range r.kernels {
		kernel.SetRoomSize(room)
		kernel.SetDamp(damp)
	}
}

func makeScratch(channels, size int) [][]float64 {
	out := make([][]float64, channels)
	for i := range out {
		out[i] = make([]float64, size)
	}
	return out
}
