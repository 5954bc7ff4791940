package effects

import (
	"fmt"
	"math"
)

const (
	defaultBitCrusherBitDepth   = 32.0
	defaultBitCrusherDownsample = 1
	minBitCrusherBitDepth       = 1.0
	maxBitCrusherBitDepth       = 32.0
	maxBitCrusherDownsample     = 256
)

// BitCrusher reduces bit depth and/or effective sample rate for lo-fi
// aesthetics. It combines two independent degradation mechanisms:
//
//   - Quantization: snaps samples to a grid of 2^(bitDepth-1) levels.
//     The input is assumed to be in [-1, 1]; values outside are quantized
//     but not clipped. Fractional depths are supported for smooth sweeps.
//
//   - Downsampling: holds each quantized value for the downsample factor's
//     worth of output samples (zero-order hold), simulating a lower
//     effective sample rate.
//
// With BitDepth=32 and Downsample=1 the effect is transparent up to
// quantization at the 32-bit grid.
type BitCrusher struct {
	bitDepth   float64
	downsample int

	quantLevels float64

	holdCounter int
	holdValue   float64
}

// NewBitCrusher creates a transparent bit crusher.
func NewBitCrusher() *BitCrusher {
	bc := &BitCrusher{
		bitDepth:   defaultBitCrusherBitDepth,
		downsample: defaultBitCrusherDownsample,
	}
	bc.updateQuantLevels()
	return bc
}

// SetBitDepth sets the quantization bit depth in [1, 32].
func (bc *BitCrusher) SetBitDepth(bitDepth float64) error {
	if bitDepth < minBitCrusherBitDepth || bitDepth > maxBitCrusherBitDepth ||
		math.IsNaN(bitDepth) || math.IsInf(bitDepth, 0) {
		return fmt.Errorf("bit crusher bit depth must be in [%g, %g]: %f",
			minBitCrusherBitDepth, maxBitCrusherBitDepth, bitDepth)
	}
	bc.bitDepth = bitDepth
	bc.updateQuantLevels()
	return nil
}

// SetDownsample sets the downsample factor in [1, 256].
func (bc *BitCrusher) SetDownsample(factor int) error {
	if factor < 1 || factor > maxBitCrusherDownsample {
		return fmt.Errorf("bit crusher downsample factor must be in [1, %d]: %d",
			maxBitCrusherDownsample, factor)
	}
	bc.downsample = factor
	return nil
}

// Reset clears the sample-and-hold state.
func (bc *BitCrusher) Reset() {
	bc.holdCounter = 0
	bc.holdValue = 0
}

// ProcessSample processes one sample through the bit crusher.
func (bc *BitCrusher) ProcessSample(input float64) float64 {
	// Sample-and-hold: only update the held value every N samples.
	bc.holdCounter++
	if bc.holdCounter >= bc.downsample {
		bc.holdCounter = 0
		bc.holdValue = bc.quantize(input)
	}

	return bc.holdValue
}

// ProcessInPlace applies the bit crusher to buf in place.
func (bc *BitCrusher) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = bc.ProcessSample(buf[i])
	}
}

// BitDepth returns the quantization bit depth.
func (bc *BitCrusher) BitDepth() float64 { return bc.bitDepth }

// Downsample returns the downsample factor.
func (bc *BitCrusher) Downsample() int { return bc.downsample }

func (bc *BitCrusher) updateQuantLevels() {
	bc.quantLevels = math.Exp2(bc.bitDepth - 1)
}

// quantize snaps a sample to the nearest quantization level.
func (bc *BitCrusher) quantize(sample float64) float64 {
	return math.Round(sample*bc.quantLevels) / bc.quantLevels
}
