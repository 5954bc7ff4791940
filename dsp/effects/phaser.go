package effects

import (
	"fmt"
	"math"
)

const (
	defaultPhaserRateHz   = 0.5
	defaultPhaserCenterHz = 800.0
	defaultPhaserDepth    = 0.5
	defaultPhaserFeedback = 0.2
	defaultPhaserMix      = 0.5
	phaserStageCount      = 6
	phaserMaxFeedback     = 0.95

	phaserNyquistSafetyRatio = 0.49

	// Depth widens a geometric sweep around the center frequency; at full
	// depth the sweep spans center/4 .. center*4.
	phaserMaxSweepFactor = 4.0
)

type phaserAllpassStage struct {
	x1 float64
	y1 float64
}

func (s *phaserAllpassStage) reset() {
	s.x1 = 0
	s.y1 = 0
}

func (s *phaserAllpassStage) process(x, a float64) float64 {
	y := a*x + s.x1 - a*s.y1
	s.x1 = x
	s.y1 = y

	return y
}

// Phaser is a mono allpass-cascade phaser. An LFO sweeps the allpass corner
// frequency geometrically around a center frequency; depth controls the
// sweep width and feedback regenerates the cascade output.
type Phaser struct {
	sampleRate float64
	rateHz     float64
	centerHz   float64
	depth      float64
	feedback   float64
	mix        float64

	lfoPhase       float64
	feedbackSample float64

	stages [phaserStageCount]phaserAllpassStage
}

// NewPhaser creates a phaser with practical defaults.
func NewPhaser(sampleRate float64) (*Phaser, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("phaser sample rate must be > 0 and finite: %f", sampleRate)
	}

	return &Phaser{
		sampleRate: sampleRate,
		rateHz:     defaultPhaserRateHz,
		centerHz:   defaultPhaserCenterHz,
		depth:      defaultPhaserDepth,
		feedback:   defaultPhaserFeedback,
		mix:        defaultPhaserMix,
	}, nil
}

// SetSampleRate updates sample rate.
func (p *Phaser) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("phaser sample rate must be > 0 and finite: %f", sampleRate)
	}
	p.sampleRate = sampleRate
	return nil
}

// SetRateHz sets modulation speed in Hz.
func (p *Phaser) SetRateHz(rateHz float64) error {
	if rateHz <= 0 || math.IsNaN(rateHz) || math.IsInf(rateHz, 0) {
		return fmt.Errorf("phaser rate must be > 0 and finite: %f", rateHz)
	}
	p.rateHz = rateHz
	return nil
}

// SetCenterFrequencyHz sets the sweep center frequency in Hz.
func (p *Phaser) SetCenterFrequencyHz(centerHz float64) error {
	if centerHz <= 0 || math.IsNaN(centerHz) || math.IsInf(centerHz, 0) {
		return fmt.Errorf("phaser center frequency must be > 0 and finite: %f", centerHz)
	}
	p.centerHz = centerHz
	return nil
}

// SetDepth sets the normalized sweep width in [0, 1].
func (p *Phaser) SetDepth(depth float64) error {
	if depth < 0 || depth > 1 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		return fmt.Errorf("phaser depth must be in [0, 1]: %f", depth)
	}
	p.depth = depth
	return nil
}

// SetFeedback sets feedback amount in [-0.95, 0.95].
func (p *Phaser) SetFeedback(feedback float64) error {
	if feedback < -phaserMaxFeedback || feedback > phaserMaxFeedback ||
		math.IsNaN(feedback) || math.IsInf(feedback, 0) {
		return fmt.Errorf("phaser feedback must be in [-%g, %g]: %f",
			phaserMaxFeedback, phaserMaxFeedback, feedback)
	}
	p.feedback = feedback
	return nil
}

// SetMix sets wet amount in [0, 1].
func (p *Phaser) SetMix(mix float64) error {
	if mix < 0 || mix > 1 || math.IsNaN(mix) || math.IsInf(mix, 0) {
		return fmt.Errorf("phaser mix must be in [0, 1]: %f", mix)
	}
	p.mix = mix
	return nil
}

// Reset clears allpass and modulation state.
func (p *Phaser) Reset() {
	for i := range p.stages {
		p.stages[i].reset()
	}
	p.feedbackSample = 0
	p.lfoPhase = 0
}

// ProcessSample processes one sample.
func (p *Phaser) ProcessSample(sample float64) float64 {
	x := sample + p.feedbackSample*p.feedback
	coef := phaserAllpassCoefficient(p.modulatedFrequency(), p.sampleRate)

	y := x
	for i := range p.stages {
		y = p.stages[i].process(y, coef)
	}

	p.feedbackSample = y

	p.lfoPhase += 2 * math.Pi * p.rateHz / p.sampleRate
	if p.lfoPhase >= 2*math.Pi {
		p.lfoPhase -= 2 * math.Pi
	}

	return sample*(1-p.mix) + y*p.mix
}

// ProcessInPlace applies phasing to buf in place.
func (p *Phaser) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = p.ProcessSample(buf[i])
	}
}

// SampleRate returns sample rate in Hz.
func (p *Phaser) SampleRate() float64 { return p.sampleRate }

// RateHz returns LFO speed in Hz.
func (p *Phaser) RateHz() float64 { return p.rateHz }

// CenterFrequencyHz returns the sweep center frequency in Hz.
func (p *Phaser) CenterFrequencyHz() float64 { return p.centerHz }

// Depth returns the normalized sweep width.
func (p *Phaser) Depth() float64 { return p.depth }

// Feedback returns feedback amount.
func (p *Phaser) Feedback() float64 { return p.feedback }

// Mix returns wet amount in [0, 1].
func (p *Phaser) Mix() float64 { return p.mix }

func (p *Phaser) modulatedFrequency() float64 {
	lfo := math.Sin(p.lfoPhase) // -1..1
	factor := math.Pow(phaserMaxSweepFactor, p.depth*lfo)
	return p.centerHz * factor
}

func phaserAllpassCoefficient(freqHz, sampleRate float64) float64 {
	maxFreq := phaserNyquistSafetyRatio * sampleRate
	if freqHz < 1 {
		freqHz = 1
	} else if freqHz > maxFreq {
		freqHz = maxFreq
	}

	g := math.Tan(math.Pi * freqHz / sampleRate)
	if math.IsInf(g, 0) || math.IsNaN(g) {
		return 0
	}

	return (1 - g) / (1 + g)
}
