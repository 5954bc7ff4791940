package effects

import (
	"fmt"
	"math"
)

const (
	defaultClipperThreshold = 1.0
	minClipperThreshold     = 0.01
	maxClipperThreshold     = 1.0
)

// Clipper hard-clamps samples to [-threshold, threshold]. No smoothing is
// applied, so audible stepping at low thresholds is expected.
type Clipper struct {
	threshold float64
}

// NewClipper creates a clipper at the maximum threshold (transparent for
// full-scale input).
func NewClipper() *Clipper {
	return &Clipper{threshold: defaultClipperThreshold}
}

// SetThreshold sets the clip threshold in [0.01, 1].
func (c *Clipper) SetThreshold(threshold float64) error {
	if threshold < minClipperThreshold || threshold > maxClipperThreshold ||
		math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return fmt.Errorf("clipper threshold must be in [%g, %g]: %f",
			minClipperThreshold, maxClipperThreshold, threshold)
	}
	c.threshold = threshold
	return nil
}

// Threshold returns the clip threshold.
func (c *Clipper) Threshold() float64 { return c.threshold }

// Reset is a no-op; the clipper is stateless.
func (c *Clipper) Reset() {}

// ProcessSample processes one sample.
func (c *Clipper) ProcessSample(input float64) float64 {
	if input > c.threshold {
		return c.threshold
	}
	if input < -c.threshold {
		return -c.threshold
	}
	return input
}

// ProcessInPlace applies clipping to buf in place.
func (c *Clipper) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}
