// Package design computes biquad coefficients from analog prototypes using
// the bilinear transform.
package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedalboard/dsp/filter/biquad"
)

const (
	// DefaultQ is the Butterworth quality factor 1/sqrt(2).
	DefaultQ = math.Sqrt2 / 2

	nyquistGuardRatio = 0.499
)

// normalizedW0 converts a frequency in Hz to a normalized angular frequency,
// guarding against frequencies at or above Nyquist.
func normalizedW0(freqHz, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, fmt.Errorf("sample rate must be > 0 and finite: %f", sampleRate)
	}
	if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return 0, fmt.Errorf("frequency must be > 0 and finite: %f", freqHz)
	}
	if maxFreq := nyquistGuardRatio * sampleRate; freqHz > maxFreq {
		freqHz = maxFreq
	}
	return 2 * math.Pi * freqHz / sampleRate, nil
}

func normalizedQ(q float64) (float64, error) {
	if q == 0 {
		return DefaultQ, nil
	}
	if q < 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, fmt.Errorf("q must be > 0 and finite: %f", q)
	}
	return q, nil
}

// Lowpass designs a second-order lowpass at the given cutoff. A q of zero
// selects the Butterworth default.
func Lowpass(cutoffHz, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(cutoffHz, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}
	q, err = normalizedQ(q)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)

	b1 := 1 - cw
	b0 := b1 / 2
	return normalize(b0, b1, b0, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs a second-order highpass at the given cutoff. A q of zero
// selects the Butterworth default.
func Highpass(cutoffHz, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(cutoffHz, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}
	q, err = normalizedQ(q)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	cw, sw := math.Cos(w0), math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 + cw) / 2
	return normalize(b0, -(1 + cw), b0, 1+alpha, -2*cw, 1-alpha)
}

func normalize(b0, b1, b2, a0, a1, a2 float64) (biquad.Coefficients, error) {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}, fmt.Errorf("degenerate design: a0 = %f", a0)
	}
	inv := 1 / a0
	c := biquad.Coefficients{
		B0: b0 * inv,
		B1: b1 * inv,
		B2: b2 * inv,
		A1: a1 * inv,
		A2: a2 * inv,
	}
	return c, c.Validate()
}
