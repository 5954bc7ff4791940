package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	defaultGainValue       = 1.0
	defaultGainRampSeconds = 0.05
	maxGainValue           = 16.0
)

// GainOption mutates gain construction parameters.
type GainOption func(*gainConfig) error

type gainConfig struct {
	gain        float64
	rampSeconds float64
}

// WithGainValue sets the initial linear gain in [0, 16].
func WithGainValue(gain float64) GainOption {
	return func(cfg *gainConfig) error {
		if gain < 0 || gain > maxGainValue || math.IsNaN(gain) || math.IsInf(gain, 0) {
			return fmt.Errorf("gain must be in [0, %g]: %f", maxGainValue, gain)
		}
		cfg.gain = gain
		return nil
	}
}

// WithGainRamp sets the smoothing ramp duration in seconds.
func WithGainRamp(seconds float64) GainOption {
	return func(cfg *gainConfig) error {
		if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
			return fmt.Errorf("gain ramp must be >= 0 and finite: %f", seconds)
		}
		cfg.rampSeconds = seconds
		return nil
	}
}

// Gain scales samples by a linear factor, smoothing changes with a linear
// ramp to avoid zipper noise and clicks.
type Gain struct {
	sampleRate  float64
	rampSeconds float64

	current float64
	target  float64
	step    float64
}

// NewGain creates a gain kernel at unity with a 50 ms smoothing ramp.
func NewGain(sampleRate float64, opts ...GainOption) (*Gain, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("gain sample rate must be > 0: %f", sampleRate)
	}

	cfg := gainConfig{
		gain:        defaultGainValue,
		rampSeconds: defaultGainRampSeconds,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	return &Gain{
		sampleRate:  sampleRate,
		rampSeconds: cfg.rampSeconds,
		current:     cfg.gain,
		target:      cfg.gain,
	}, nil
}

// SetSampleRate updates the sample rate and recomputes the ramp slope.
func (g *Gain) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("gain sample rate must be > 0: %f", sampleRate)
	}
	g.sampleRate = sampleRate
	g.updateStep()
	return nil
}

// SetGain sets the target linear gain in [0, 16]. The change is applied
// over the configured ramp duration.
func (g *Gain) SetGain(gain float64) error {
	if gain < 0 || gain > maxGainValue || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return fmt.Errorf("gain must be in [0, %g]: %f", maxGainValue, gain)
	}
	g.target = gain
	g.updateStep()
	return nil
}

// Reset snaps the smoothed gain to its target.
func (g *Gain) Reset() {
	g.current = g.target
	g.step = 0
}

// ProcessSample processes one sample.
func (g *Gain) ProcessSample(input float64) float64 {
	g.advance()
	return input * g.current
}

// ProcessInPlace applies gain to buf in place. Once the ramp has settled
// the whole block is scaled in one vectorized pass.
func (g *Gain) ProcessInPlace(buf []float64) {
	if g.current == g.target {
		vecmath.ScaleBlock(buf, buf, g.current)
		return
	}
	for i := range buf {
		buf[i] = g.ProcessSample(buf[i])
	}
}

// SampleRate returns the sample rate in Hz.
func (g *Gain) SampleRate() float64 { return g.sampleRate }

// Gain returns the target linear gain.
func (g *Gain) Gain() float64 { return g.target }

// CurrentGain returns the instantaneous smoothed gain.
func (g *Gain) CurrentGain() float64 { return g.current }

// RampSeconds returns the smoothing ramp duration.
func (g *Gain) RampSeconds() float64 { return g.rampSeconds }

func (g *Gain) updateStep() {
	if g.rampSeconds <= 0 {
		g.current = g.target
		g.step = 0
		return
	}
	samples := g.rampSeconds * g.sampleRate
	if samples < 1 {
		samples = 1
	}
	g.step = (g.target - g.current) / samples
}

func (g *Gain) advance() {
	if g.current == g.target {
		return
	}
	g.current += g.step
	if (g.step > 0 && g.current >= g.target) || (g.step < 0 && g.current <= g.target) {
		g.current = g.target
		g.step = 0
	}
}
