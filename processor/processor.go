// Package processor defines the uniform effect-processing contract and the
// registry of built-in effects.
//
// A Processor exposes an ordered set of normalized scalar parameters,
// a Prepare/Process/Reset lifecycle, and in-place block processing over
// channel-major float32 audio. Parameter access is safe from a control
// goroutine while Process runs on the audio goroutine; changes take effect
// at block boundaries.
package processor

import (
	"fmt"
	"math"
)

// Spec is the negotiated operating configuration. Every processor must be
// prepared with a Spec before its first Process call and again whenever the
// configuration changes.
type Spec struct {
	SampleRate   float64
	MaxBlockSize int
	NumChannels  int
}

// Validate reports whether the spec describes a usable configuration.
func (s Spec) Validate() error {
	if s.SampleRate <= 0 || math.IsNaN(s.SampleRate) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("sample rate must be > 0 and finite: %f", s.SampleRate)
	}
	if s.MaxBlockSize <= 0 {
		return fmt.Errorf("max block size must be > 0: %d", s.MaxBlockSize)
	}
	if s.NumChannels <= 0 {
		return fmt.Errorf("channel count must be > 0: %d", s.NumChannels)
	}
	return nil
}

// Block is a non-owned view over channel-major audio: one float32 slice per
// channel, all of equal length. Length and channel count are fixed for one
// Process call but may vary between calls up to the prepared limits.
type Block [][]float32

// Processor is the polymorphic contract shared by built-in effects and
// externally loaded processors.
//
// Prepare is idempotent and must never run concurrently with Process.
// Process transforms audio in place, handles 1..MaxBlockSize samples, and is
// infallible: it performs no allocation, locking, or I/O. Reset clears
// internal state (delay buffers, envelopes, filter history) without
// releasing allocations.
type Processor interface {
	Name() string
	NumParameters() int
	Parameter(index int) float32
	SetParameter(index int, value float32)
	Prepare(spec Spec) error
	Process(block Block)
	Reset()
}
