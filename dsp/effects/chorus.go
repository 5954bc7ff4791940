package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedalboard/dsp/delay"
)

const (
	defaultChorusRateHz       = 1.0
	defaultChorusDepth        = 0.25
	defaultChorusCenterDelay  = 0.007
	defaultChorusFeedback     = 0.0
	defaultChorusMix          = 0.5
	minChorusCenterDelay      = 0.0005
	maxChorusCenterDelay      = 0.05
	maxChorusFeedback         = 0.95
	chorusDepthExcursionRatio = 0.45
)

// Chorus is a single-voice modulated-delay chorus with feedback.
//
// The read position follows
//
//	d(t) = center * (1 + excursion * sin(phase))
//
// where excursion scales with the normalized depth, bounded so the delay
// stays strictly positive. Fractional reads use cubic interpolation.
type Chorus struct {
	sampleRate  float64
	rateHz      float64
	depth       float64
	centerDelay float64
	feedback    float64
	mix         float64

	lfoPhase float64
	lastWet  float64

	line *delay.Line
}

// NewChorus creates a chorus with musical defaults.
func NewChorus(sampleRate float64) (*Chorus, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("chorus sample rate must be > 0: %f", sampleRate)
	}
	c := &Chorus{
		sampleRate:  sampleRate,
		rateHz:      defaultChorusRateHz,
		depth:       defaultChorusDepth,
		centerDelay: defaultChorusCenterDelay,
		feedback:    defaultChorusFeedback,
		mix:         defaultChorusMix,
	}
	if err := c.reconfigureLine(); err != nil {
		return nil, err
	}
	return c, nil
}

// SetSampleRate updates the sample rate and resizes the delay line.
func (c *Chorus) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("chorus sample rate must be > 0: %f", sampleRate)
	}
	c.sampleRate = sampleRate
	return c.reconfigureLine()
}

// SetRateHz sets the LFO rate. Must be > 0.
func (c *Chorus) SetRateHz(rateHz float64) error {
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return fmt.Errorf("chorus rate must be > 0: %f", rateHz)
	}
	c.rateHz = rateHz
	return nil
}

// SetDepth sets the normalized modulation depth in [0, 1].
func (c *Chorus) SetDepth(depth float64) error {
	if depth < 0 || depth > 1 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return fmt.Errorf("chorus depth must be in [0, 1]: %f", depth)
	}
	c.depth = depth
	return nil
}

// SetCenterDelay sets the center delay in seconds in [0.0005, 0.05].
func (c *Chorus) SetCenterDelay(seconds float64) error {
	if seconds < minChorusCenterDelay || seconds > maxChorusCenterDelay ||
		math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("chorus center delay must be in [%g, %g]: %f",
			minChorusCenterDelay, maxChorusCenterDelay, seconds)
	}
	c.centerDelay = seconds
	return nil
}

// SetFeedback sets feedback amount in [-0.95, 0.95].
func (c *Chorus) SetFeedback(feedback float64) error {
	if feedback < -maxChorusFeedback || feedback > maxChorusFeedback ||
		math.IsNaN(feedback) || math.IsInf(feedback, 0) {
		return fmt.Errorf("chorus feedback must be in [-%g, %g]: %f",
			maxChorusFeedback, maxChorusFeedback, feedback)
	}
	c.feedback = feedback
	return nil
}

// SetMix sets wet amount in [0, 1].
func (c *Chorus) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
		return fmt.Errorf("chorus mix must be in [0, 1]: %f", mix)
	}
	c.mix = mix
	return nil
}

// Reset clears delay history, feedback and modulation phase.
func (c *Chorus) Reset() {
	c.line.Reset()
	c.lfoPhase = 0
	c.lastWet = 0
}

// ProcessSample processes one sample.
func (c *Chorus) ProcessSample(input float64) float64 {
	c.line.Write(input + c.lastWet*c.feedback)

	centerSamples := c.centerDelay * c.sampleRate
	excursion := c.depth * chorusDepthExcursionRatio
	delaySamples := centerSamples * (1 + excursion*math.Sin(c.lfoPhase))

	wet := c.line.ReadFractional(delaySamples)
	c.lastWet = wet

	c.lfoPhase += 2 * math.Pi * c.rateHz / c.sampleRate
	if c.lfoPhase >= 2*math.Pi {
		c.lfoPhase -= 2 * math.Pi
	}

	return input*(1-c.mix) + wet*c.mix
}

// ProcessInPlace applies chorus to buf in place.
func (c *Chorus) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (c *Chorus) SampleRate() float64 { return c.sampleRate }

// RateHz returns the LFO rate in Hz.
func (c *Chorus) RateHz() float64 { return c.rateHz }

// Depth returns the normalized modulation depth.
func (c *Chorus) Depth() float64 { return c.depth }

// CenterDelay returns the center delay in seconds.
func (c *Chorus) CenterDelay() float64 { return c.centerDelay }

// Feedback returns feedback amount.
func (c *Chorus) Feedback() float64 { return c.feedback }

// Mix returns wet amount in [0, 1].
func (c *Chorus) Mix() float64 { return c.mix }

func (c *Chorus) reconfigureLine() error {
	// Size for the deepest possible excursion at the longest center delay
	// so parameter changes never reallocate.
	needed := int(math.Ceil(maxChorusCenterDelay*(1+chorusDepthExcursionRatio)*c.sampleRate)) + 4
	if c.line != nil && c.line.Len() == needed {
		return nil
	}

	line, err := delay.New(needed)
	if err != nil {
		return fmt.Errorf("chorus delay line: %w", err)
	}
	c.line = line
	return nil
}
