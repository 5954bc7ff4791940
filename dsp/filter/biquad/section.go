// Package biquad implements second-order IIR filter sections in transposed
// direct form II.
package biquad

import (
	"fmt"
	"math"
)

// Coefficients holds normalized biquad coefficients (a0 == 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Identity returns coefficients that pass the signal through unchanged.
func Identity() Coefficients {
	return Coefficients{B0: 1}
}

// Validate reports whether all coefficients are finite.
func (c Coefficients) Validate() error {
	for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("biquad coefficient must be finite: %f", v)
		}
	}
	return nil
}

// Section is a single biquad filter section with transposed direct form II
// state. The zero value passes audio through unchanged after SetCoefficients
// with Identity, but the usual entry point is New.
type Section struct {
	coeffs Coefficients
	d0, d1 float64
}

// New creates a section with the given coefficients.
func New(coeffs Coefficients) (*Section, error) {
	if err := coeffs.Validate(); err != nil {
		return nil, err
	}
	return &Section{coeffs: coeffs}, nil
}

// SetCoefficients swaps coefficients without touching filter state, so the
// filter can be retuned mid-stream without clicks from a state reset.
func (s *Section) SetCoefficients(coeffs Coefficients) error {
	if err := coeffs.Validate(); err != nil {
		return err
	}
	s.coeffs = coeffs
	return nil
}

// Coefficients returns the current coefficient set.
func (s *Section) Coefficients() Coefficients { return s.coeffs }

// Reset clears the delay state.
func (s *Section) Reset() {
	s.d0 = 0
	s.d1 = 0
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	c := s.coeffs
	y := c.B0*x + s.d0
	s.d0 = c.B1*x - c.A1*y + s.d1
	s.d1 = c.B2*x - c.A2*y
	return y
}

// ProcessBlock filters buf in place. The loop is unrolled two samples at a
// time with the state carried in locals.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.coeffs.B0, s.coeffs.B1, s.coeffs.B2
	a1, a2 := s.coeffs.A1, s.coeffs.A2
	d0, d1 := s.d0, s.d1

	n := len(buf)
	i := 0
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0 = b1*x0 - a1*y0 + d1
		d1 = b2*x0 - a2*y0
		buf[i] = y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0
		d0 = b1*x1 - a1*y1 + d1
		d1 = b2*x1 - a2*y1
		buf[i+1] = y1
	}
	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	s.d0, s.d1 = d0, d1
}

// MagnitudeAt returns the magnitude response at a normalized angular
// frequency w0 in [0, pi].
func (s *Section) MagnitudeAt(w0 float64) float64 {
	c := s.coeffs
	cw, sw := math.Cos(w0), math.Sin(w0)
	c2w, s2w := math.Cos(2*w0), math.Sin(2*w0)

	numRe := c.B0 + c.B1*cw + c.B2*c2w
	numIm := -c.B1*sw - c.B2*s2w
	denRe := 1 + c.A1*cw + c.A2*c2w
	denIm := -c.A1*sw - c.A2*s2w

	num := math.Hypot(numRe, numIm)
	den := math.Hypot(denRe, denIm)
	if den == 0 {
		return math.Inf(1)
	}
	return num / den
}
