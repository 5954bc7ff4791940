package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedalboard/internal/testutil"
)

func TestNewDelayDefaults(t *testing.T) {
	d, err := NewDelay(48000)
	if err != nil {
		t.Fatalf("NewDelay failed: %v", err)
	}
	if d.Time() != 0.25 {
		t.Errorf("default time = %v, want 0.25", d.Time())
	}
	if d.Feedback() != 0.35 {
		t.Errorf("default feedback = %v, want 0.35", d.Feedback())
	}
	if d.Mix() != 0.25 {
		t.Errorf("default mix = %v, want 0.25", d.Mix())
	}
}

func TestDelayParameterValidation(t *testing.T) {
	d, err := NewDelay(48000)
	if err != nil {
		t.Fatalf("NewDelay failed: %v", err)
	}
	if err := d.SetTime(-0.1); err == nil {
		t.Error("negative time should fail")
	}
	if err := d.SetTime(2.5); err == nil {
		t.Error("time above 2 s should fail")
	}
	if err := d.SetFeedback(1.1); err == nil {
		t.Error("feedback above 1 should fail")
	}
	if err := d.SetMix(math.NaN()); err == nil {
		t.Error("NaN mix should fail")
	}
}

func TestDelayTimeFloorsAtOneSample(t *testing.T) {
	d, err := NewDelay(48000)
	if err != nil {
		t.Fatalf("NewDelay failed: %v", err)
	}
	if err := d.SetTime(0); err != nil {
		t.Fatalf("SetTime failed: %v", err)
	}
	if d.DelaySamples() != 1 {
		t.Errorf("delay samples = %d, want 1", d.DelaySamples())
	}
}

func TestDelayImpulseShift(t *testing.T) {
	d, err := NewDelay(48000)
	if err != nil {
		t.Fatalf("NewDelay failed: %v", err)
	}
	if err := d.SetTime(0); err != nil {
		t.Fatalf("SetTime failed: %v", err)
	}
	if err := d.SetFeedback(0); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	if err := d.SetMix(1); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}

	// Fully wet with a one-sample delay shifts the impulse by one.
	buf := testutil.Impulse(8, 0)
	d.ProcessInPlace(buf)

	want := testutil.Impulse(8, 1)
	testutil.RequireSliceNearlyEqual(t, buf, want, 0)
}

func TestDelayEchoSpacing(t *testing.T) {
	const sr = 1000.0
	d, err := NewDelay(sr)
	if err != nil {
		t.Fatalf("NewDelay failed: %v", err)
	}
	if err := d.SetTime(0.01); err != nil {
		t.Fatalf("SetTime failed: %v", err)
	}
	if err := d.SetFeedback(0.5); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	if err := d.SetMix(1); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}

	buf := testutil.Impulse(35, 0)
	d.ProcessInPlace(buf)

	// Echoes at multiples of 10 samples decaying by the feedback factor.
	if buf[10] != 1.0 {
		t.Errorf("first echo = %v, want 1", buf[10])
	}
	if buf[20] != 0.5 {
		t.Errorf("second echo = %v, want 0.5", buf[20])
	}
	if buf[30] != 0.25 {
		t.Errorf("third echo = %v, want 0.25", buf[30])
	}
	for i, v := range buf {
		if i%10 != 0 && v != 0 {
			t.Errorf("unexpected signal at %d: %v", i, v)
		}
	}
}

func TestDelayResetClearsHistory(t *testing.T) {
	d, err := NewDelay(48000)
	if err != nil {
		t.Fatalf("NewDelay failed: %v", err)
	}
	if err := d.SetMix(1); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}

	noise := testutil.DeterministicNoise(1, 0.8, 2048)
	d.ProcessInPlace(noise)
	d.Reset()

	silent := make([]float64, 2048)
	d.ProcessInPlace(silent)
	for i, v := range silent {
		if v != 0 {
			t.Fatalf("residual signal after reset at %d: %v", i, v)
		}
	}
}

func TestDelaySampleRateChangeKeepsConfig(t *testing.T) {
	d, err := NewDelay(44100)
	if err != nil {
		t.Fatalf("NewDelay failed: %v", err)
	}
	if err := d.SetTime(0.5); err != nil {
		t.Fatalf("SetTime failed: %v", err)
	}
	if err := d.SetSampleRate(96000); err != nil {
		t.Fatalf("SetSampleRate failed: %v", err)
	}
	if d.DelaySamples() != 48000 {
		t.Errorf("delay samples after rate change = %d, want 48000", d.DelaySamples())
	}
}
