// Package stream drives a processor from a real-time audio device.
//
// A Session binds exactly one processor.Processor to one Device. The device
// owns the audio thread and invokes the session callback with input and
// output channel buffers; the session copies input into a working block,
// runs the processor, and copies the result out. The callback path performs
// no allocation once the session has started.
package stream

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-pedalboard/processor"
)

// DeviceSpec describes the format a device has negotiated with its backend.
type DeviceSpec struct {
	SampleRate     float64
	BlockSize      int
	InputChannels  int
	OutputChannels int
}

// Validate reports whether the spec describes a usable device format.
func (s DeviceSpec) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive: %f", s.SampleRate)
	}
	if s.BlockSize <= 0 {
		return fmt.Errorf("block size must be positive: %d", s.BlockSize)
	}
	if s.InputChannels < 0 {
		return fmt.Errorf("input channel count must not be negative: %d", s.InputChannels)
	}
	if s.OutputChannels <= 0 {
		return fmt.Errorf("output channel count must be positive: %d", s.OutputChannels)
	}
	return nil
}

// Callback is invoked by a device on its audio thread. in holds
// InputChannels buffers and out holds OutputChannels buffers, each with at
// least n valid samples. n never exceeds the negotiated BlockSize.
type Callback func(in, out [][]float32, n int)

// Device abstracts an audio backend. Implementations deliver audio through
// the registered callback between Start and Stop; Stop must not return
// while a callback is still in flight. A callback arriving after Stop
// anyway produces silence instead of touching the processor.
type Device interface {
	Spec() DeviceSpec
	SetCallback(cb Callback)
	Start() error
	Stop() error
}

// State tracks the session lifecycle.
type State int

const (
	StateIdle State = iota
	StatePrepared
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePrepared:
		return "prepared"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	errNilProcessor = errors.New("session requires a processor")
	errNilDevice    = errors.New("session requires a device")
	// ErrSessionClosed is returned from lifecycle calls after Close.
	ErrSessionClosed = errors.New("session is closed")
)

// Session connects a processor to a device. It borrows the processor for
// the lifetime of the session and never releases it itself.
type Session struct {
	mu     sync.Mutex
	proc   processor.Processor
	device Device
	state  State
	block  atomic.Pointer[processor.Block]
	log    *logrus.Entry
}

// NewSession binds proc to device and negotiates channels. The returned
// session is in the Prepared state; no audio flows until Start.
func NewSession(proc processor.Processor, device Device) (*Session, error) {
	if proc == nil {
		return nil, errNilProcessor
	}
	if device == nil {
		return nil, errNilDevice
	}
	spec := device.Spec()
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("device spec invalid: %w", err)
	}

	s := &Session{
		proc:   proc,
		device: device,
		state:  StatePrepared,
		log: logrus.WithFields(logrus.Fields{
			"component": "stream",
			"effect":    proc.Name(),
		}),
	}
	device.SetCallback(s.render)

	s.log.WithFields(logrus.Fields{
		"sample_rate":     spec.SampleRate,
		"block_size":      spec.BlockSize,
		"input_channels":  spec.InputChannels,
		"output_channels": spec.OutputChannels,
	}).Info("session prepared")
	return s, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start prepares the processor for the device format and starts the device.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle:
		return ErrSessionClosed
	case StateRunning:
		return nil
	}

	spec := s.device.Spec()
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("device spec invalid: %w", err)
	}

	procSpec := processor.Spec{
		SampleRate:   spec.SampleRate,
		MaxBlockSize: spec.BlockSize,
		NumChannels:  spec.OutputChannels,
	}
	if err := s.proc.Prepare(procSpec); err != nil {
		return fmt.Errorf("prepare %s: %w", s.proc.Name(), err)
	}

	block := make(processor.Block, spec.OutputChannels)
	for ch := range block {
		block[ch] = make([]float32, spec.BlockSize)
	}
	s.block.Store(&block)

	if err := s.device.Start(); err != nil {
		s.block.Store(nil)
		return fmt.Errorf("start device: %w", err)
	}
	s.state = StateRunning
	s.log.Info("session running")
	return nil
}

// Stop halts the device and resets the processor so a later Start begins
// from silence.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateIdle:
		return ErrSessionClosed
	case StatePrepared, StateStopped:
		return nil
	}

	if err := s.device.Stop(); err != nil {
		return fmt.Errorf("stop device: %w", err)
	}
	s.block.Store(nil)
	s.proc.Reset()
	s.state = StateStopped
	s.log.Info("session stopped")
	return nil
}

// Close releases the session. A running session is stopped first. Close is
// safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == StateIdle {
		s.mu.Unlock()
		return nil
	}
	running := s.state == StateRunning
	s.mu.Unlock()

	if running {
		if err := s.Stop(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.device.SetCallback(nil)
	s.block.Store(nil)
	s.state = StateIdle
	s.log.Info("session closed")
	return nil
}

// render is the device callback. It copies input into the working block,
// zero-filling output channels that have no matching input, processes, and
// copies the result to the device output buffers.
func (s *Session) render(in, out [][]float32, n int) {
	bp := s.block.Load()
	if bp == nil {
		for ch := range out {
			clear(out[ch][:min(n, len(out[ch]))])
		}
		return
	}
	block := *bp

	for ch := range block {
		dst := block[ch]
		if n < len(dst) {
			dst = dst[:n]
		}
		if ch < len(in) && len(in[ch]) >= len(dst) {
			copy(dst, in[ch][:len(dst)])
		} else {
			clear(dst)
		}
		block[ch] = dst
	}

	s.proc.Process(block)

	for ch := range out {
		if ch < len(block) {
			copy(out[ch][:min(n, len(out[ch]))], block[ch])
		} else {
			clear(out[ch][:min(n, len(out[ch]))])
		}
	}

	// Restore full capacity for the next callback.
	for ch := range block {
		block[ch] = block[ch][:cap(block[ch])]
	}
}
