package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedalboard/dsp/core"
)

const (
	reverbNumCombs     = 8
	reverbNumAllpasses = 4

	reverbFixedGain = 0.015

	// Tuning values calibrated for 44.1 kHz; sizes scale with sample rate.
	reverbTuningRate = 44100.0

	defaultReverbWet      = 0.33
	defaultReverbDry      = 1.0
	defaultReverbRoomSize = 0.5
	defaultReverbDamp     = 0.5
)

var reverbCombTunings = [reverbNumCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}

var reverbAllpassTunings = [reverbNumAllpasses]int{556, 441, 341, 225}

// ReverbOption mutates reverb construction parameters.
type ReverbOption func(*reverbConfig) error

type reverbConfig struct {
	tuningOffset int
}

// WithReverbTuningOffset lengthens every comb and allpass line by the given
// sample count. Giving each channel of a multichannel setup a distinct
// offset decorrelates their tails.
func WithReverbTuningOffset(samples int) ReverbOption {
	return func(cfg *reverbConfig) error {
		if samples < 0 {
			return fmt.Errorf("reverb tuning offset must be >= 0: %d", samples)
		}
		cfg.tuningOffset = samples
		return nil
	}
}

// Reverb is a Schroeder/Freeverb-style reverb: eight parallel damped combs
// feeding four serial allpasses.
type Reverb struct {
	wet      float64
	dry      float64
	roomSize float64
	damp     float64
	gain     float64

	combs   [reverbNumCombs]reverbComb
	allpass [reverbNumAllpasses]reverbAllpass
}

type reverbAllpass struct {
	feedback float64
	buffer   []float64
	index    int
}

func newReverbAllpass(size int) reverbAllpass {
	return reverbAllpass{
		feedback: 0.5,
		buffer:   make([]float64, size),
	}
}

func (a *reverbAllpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	output := bufOut - input
	a.buffer[a.index] = input + bufOut*a.feedback
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}
	return output
}

func (a *reverbAllpass) reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.index = 0
}

type reverbComb struct {
	feedback    float64
	filterStore float64
	dampA       float64
	dampB       float64
	buffer      []float64
	index       int
}

func newReverbComb(size int) reverbComb {
	c := reverbComb{
		buffer: make([]float64, size),
	}
	c.setDamp(defaultReverbDamp)
	return c
}

func (c *reverbComb) setDamp(v float64) {
	c.dampA = v
	c.dampB = 1 - v
}

func (c *reverbComb) process(input float64) float64 {
	output := c.buffer[c.index]
	c.filterStore = core.FlushDenormals(output*c.dampB + c.filterStore*c.dampA)
	c.buffer[c.index] = input + c.filterStore*c.feedback
	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}
	return output
}

func (c *reverbComb) reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.index = 0
	c.filterStore = 0
}

// NewReverb constructs a reverb with line lengths scaled to the sample rate.
func NewReverb(sampleRate float64, opts ...ReverbOption) (*Reverb, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("reverb sample rate must be > 0: %f", sampleRate)
	}

	var cfg reverbConfig
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	scale := sampleRate / reverbTuningRate
	r := &Reverb{gain: reverbFixedGain}
	for i, tuning := range reverbCombTunings {
		r.combs[i] = newReverbComb(scaledLineLength(tuning, scale, cfg.tuningOffset))
	}
	for i, tuning := range reverbAllpassTunings {
		r.allpass[i] = newReverbAllpass(scaledLineLength(tuning, scale, cfg.tuningOffset))
	}

	r.SetWet(defaultReverbWet)
	r.SetDry(defaultReverbDry)
	r.SetRoomSize(defaultReverbRoomSize)
	r.SetDamp(defaultReverbDamp)
	return r, nil
}

func scaledLineLength(tuning int, scale float64, offset int) int {
	size := int(math.Round(float64(tuning)*scale)) + offset
	if size < 1 {
		size = 1
	}
	return size
}

// Reset clears all delay and filter state.
func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}
	for i := range r.allpass {
		r.allpass[i].reset()
	}
}

// ProcessWet runs one sample through the comb/allpass network and returns
// only the unweighted wet signal. Callers compose their own wet/dry mix.
func (r *Reverb) ProcessWet(input float64) float64 {
	x := r.gain * input

	var acc float64
	for i := range r.combs {
		acc += r.combs[i].process(x)
	}
	for i := range r.allpass {
		acc = r.allpass[i].process(acc)
	}
	return acc
}

// ProcessSample processes one sample using the kernel's own wet/dry gains.
func (r *Reverb) ProcessSample(input float64) float64 {
	return r.ProcessWet(input)*r.wet + input*r.dry
}

// ProcessInPlace applies reverb to buf in place.
func (r *Reverb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = r.ProcessSample(buf[i])
	}
}

// SetWet sets wet gain in [0, 1].
func (r *Reverb) SetWet(v float64) {
	r.wet = core.ClampUnit(v)
}

// SetDry sets dry gain in [0, 1].
func (r *Reverb) SetDry(v float64) {
	r.dry = core.ClampUnit(v)
}

// SetRoomSize sets comb feedback amount in [0, 1].
func (r *Reverb) SetRoomSize(v float64) {
	r.roomSize = core.ClampUnit(v)
	for i := range r.combs {
		r.combs[i].feedback = r.roomSize
	}
}

// SetDamp sets damping of the comb feedback filters in [0, 1].
func (r *Reverb) SetDamp(v float64) {
	r.damp = core.ClampUnit(v)
	for i := range r.combs {
		r.combs[i].setDamp(r.damp)
	}
}

// Wet returns wet gain.
func (r *Reverb) Wet() float64 { return r.wet }

// Dry returns dry gain.
func (r *Reverb) Dry() float64 { return r.dry }

// RoomSize returns comb feedback amount.
func (r *Reverb) RoomSize() float64 { return r.roomSize }

// Damp returns comb damping value.
func (r *Reverb) Damp() float64 { return r.damp }
