// Package moog implements a nonlinear four-stage ladder lowpass filter.
package moog

import (
	"fmt"
	"math"
)

const (
	defaultLadderCutoffHz  = 1000.0
	defaultLadderResonance = 0.0
	defaultLadderDrive     = 1.0

	minLadderDrive = 1.0
	maxLadderDrive = 5.0

	// Resonance is normalized; the ladder self-oscillates as the feedback
	// gain approaches 4, so the scale stops just short of it.
	ladderResonanceScale = 3.98

	ladderNyquistGuardRatio = 0.49

	// State clamp keeps the recursion finite when driven hard.
	ladderStateClip = 32.0
)

// Ladder is a mono four-pole ladder lowpass with tanh saturation in each
// stage. Resonance feeds the last stage back to the input; drive pushes the
// signal harder into the stage nonlinearities with a compensating output
// gain of 1/drive.
type Ladder struct {
	sampleRate float64
	cutoffHz   float64
	resonance  float64
	drive      float64

	g            float64
	feedbackGain float64

	stage [4]float64
}

// New creates a ladder filter with the cutoff at 1 kHz, no resonance and
// unity drive.
func New(sampleRate float64) (*Ladder, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("ladder sample rate must be > 0 and finite: %f", sampleRate)
	}
	l := &Ladder{
		sampleRate: sampleRate,
		cutoffHz:   defaultLadderCutoffHz,
		resonance:  defaultLadderResonance,
		drive:      defaultLadderDrive,
	}
	l.updateCoefficients()
	return l, nil
}

// SetSampleRate updates the sample rate and retunes the cutoff coefficient.
func (l *Ladder) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("ladder sample rate must be > 0 and finite: %f", sampleRate)
	}
	l.sampleRate = sampleRate
	l.updateCoefficients()
	return nil
}

// SetCutoff sets the cutoff frequency in Hz. Frequencies near Nyquist are
// clamped rather than rejected.
func (l *Ladder) SetCutoff(cutoffHz float64) error {
	if cutoffHz <= 0 || math.IsNaN(cutoffHz) || math.IsInf(cutoffHz, 0) {
		return fmt.Errorf("ladder cutoff must be > 0 and finite: %f", cutoffHz)
	}
	l.cutoffHz = cutoffHz
	l.updateCoefficients()
	return nil
}

// SetResonance sets normalized resonance in [0, 1].
func (l *Ladder) SetResonance(resonance float64) error {
	if resonance < 0 || resonance > 1 || math.IsNaN(resonance) || math.IsInf(resonance, 0) {
		return fmt.Errorf("ladder resonance must be in [0, 1]: %f", resonance)
	}
	l.resonance = resonance
	l.feedbackGain = resonance * ladderResonanceScale
	return nil
}

// SetDrive sets input drive in [1, 5].
func (l *Ladder) SetDrive(drive float64) error {
	if drive < minLadderDrive || drive > maxLadderDrive ||
		math.IsNaN(drive) || math.IsInf(drive, 0) {
		return fmt.Errorf("ladder drive must be in [%g, %g]: %f",
			minLadderDrive, maxLadderDrive, drive)
	}
	l.drive = drive
	return nil
}

// SampleRate returns the sample rate in Hz.
func (l *Ladder) SampleRate() float64 { return l.sampleRate }

// Cutoff returns the cutoff frequency in Hz.
func (l *Ladder) Cutoff() float64 { return l.cutoffHz }

// Resonance returns normalized resonance.
func (l *Ladder) Resonance() float64 { return l.resonance }

// Drive returns input drive.
func (l *Ladder) Drive() float64 { return l.drive }

// Reset clears all stage state.
func (l *Ladder) Reset() {
	for i := range l.stage {
		l.stage[i] = 0
	}
}

// ProcessSample filters one sample.
func (l *Ladder) ProcessSample(input float64) float64 {
	x := input*l.drive - l.feedbackGain*l.stage[3]

	v := math.Tanh(x)
	for i := range l.stage {
		s := l.stage[i] + l.g*(v-math.Tanh(l.stage[i]))
		s = clipState(s)
		l.stage[i] = s
		v = math.Tanh(s)
	}

	return l.stage[3] / l.drive
}

// ProcessInPlace filters buf in place.
func (l *Ladder) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = l.ProcessSample(buf[i])
	}
}

func (l *Ladder) updateCoefficients() {
	fc := l.cutoffHz
	if maxFreq := ladderNyquistGuardRatio * l.sampleRate; fc > maxFreq {
		fc = maxFreq
	}
	l.g = 1 - math.Exp(-2*math.Pi*fc/l.sampleRate)
}

func clipState(s float64) float64 {
	if s > ladderStateClip {
		return ladderStateClip
	}
	if s < -ladderStateClip {
		return -ladderStateClip
	}
	return s
}
