package processor

import (
	"fmt"

	"github.com/cwbudde/algo-pedalboard/dsp/core"
)

// channelKernel is one prepared mono kernel bound to a single channel.
// apply maps the full normalized parameter snapshot onto the kernel,
// process filters a float64 buffer in place, reset clears kernel state.
type channelKernel struct {
	apply   func(values []float32)
	process func(buf []float64)
	reset   func()
}

// monoAdapter lifts a mono float64 kernel to the Processor contract by
// instantiating one kernel per channel and converting sample formats through
// preallocated scratch. Parameter snapshots are taken once per block; the
// kernels only see changes at block boundaries.
type monoAdapter struct {
	name       string
	params     parameterSet
	newChannel func(sampleRate float64, channel int) (channelKernel, error)

	spec     Spec
	prepared bool
	channels []channelKernel
	scratch  []float64
	applied  []float32
}

func newMonoAdapter(name string, defaults []float32,
	newChannel func(sampleRate float64, channel int) (channelKernel, error)) *monoAdapter {
	return &monoAdapter{
		name:       name,
		params:     newParameterSet(defaults),
		newChannel: newChannel,
		applied:    make([]float32, len(defaults)),
	}
}

func (a *monoAdapter) Name() string { return a.name }

func (a *monoAdapter) NumParameters() int { return a.params.count() }

func (a *monoAdapter) Parameter(index int) float32 { return a.params.get(index) }

func (a *monoAdapter) SetParameter(index int, value float32) { a.params.set(index, value) }

func (a *monoAdapter) Prepare(spec Spec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("prepare %s: %w", a.name, err)
	}
	if a.prepared && spec == a.spec {
		return nil
	}

	channels := make([]channelKernel, spec.NumChannels)
	for ch := range channels {
		kernel, err := a.newChannel(spec.SampleRate, ch)
		if err != nil {
			return fmt.Errorf("prepare %s: %w", a.name, err)
		}
		channels[ch] = kernel
	}

	a.spec = spec
	a.channels = channels
	a.scratch = make([]float64, spec.MaxBlockSize)
	a.prepared = true

	a.params.snapshotInto(a.applied)
	for _, ch := range a.channels {
		ch.apply(a.applied)
	}
	return nil
}

func (a *monoAdapter) Process(block Block) {
	if !a.prepared {
		return
	}

	if a.params.snapshotInto(a.applied) {
		for _, ch := range a.channels {
			ch.apply(a.applied)
		}
	}

	for ch := 0; ch < len(block) && ch < len(a.channels); ch++ {
		buf := block[ch]
		n := min(len(buf), len(a.scratch))
		s := a.scratch[:n]
		core.Widen(s, buf[:n])
		a.channels[ch].process(s)
		core.Narrow(buf[:n], s)
	}
}

func (a *monoAdapter) Reset() {
	for _, ch := range a.channels {
		ch.reset()
	}
}

func clamp01(v float32) float64 {
	return core.ClampUnit(float64(v))
}
