// Package testutil provides deterministic signal generators and tolerance
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// ConstBlock32 returns a channels x length float32 block filled with value.
func ConstBlock32(value float32, channels, length int) [][]float32 {
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, length)
		for i := range out[ch] {
			out[ch][i] = value
		}
	}
	return out
}

// ImpulseBlock32 returns a channels x length float32 block with a unit
// impulse at pos in every channel.
func ImpulseBlock32(channels, length, pos int) [][]float32 {
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, length)
		if pos >= 0 && pos < length {
			out[ch][pos] = 1
		}
	}
	return out
}

// SineBlock32 returns a channels x length float32 block holding the same
// deterministic sine in every channel.
func SineBlock32(freqHz, sampleRate, amplitude float64, channels, length int) [][]float32 {
	mono := DeterministicSine(freqHz, sampleRate, amplitude, length)
	out := make([][]float32, channels)
	for ch := range out {
		out[ch] = make([]float32, length)
		for i, v := range mono {
			out[ch][i] = float32(v)
		}
	}
	return out
}
