package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedalboard/internal/testutil"
)

func TestNewGainDefaults(t *testing.T) {
	g, err := NewGain(48000)
	if err != nil {
		t.Fatalf("NewGain failed: %v", err)
	}
	if g.Gain() != 1.0 {
		t.Errorf("default gain = %v, want 1", g.Gain())
	}
	if g.RampSeconds() != 0.05 {
		t.Errorf("default ramp = %v, want 0.05", g.RampSeconds())
	}
}

func TestNewGainInvalidSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewGain(sr); err == nil {
			t.Errorf("NewGain(%v) should fail", sr)
		}
	}
}

func TestGainSetGainValidation(t *testing.T) {
	g, err := NewGain(48000)
	if err != nil {
		t.Fatalf("NewGain failed: %v", err)
	}
	for _, v := range []float64{-0.1, 16.1, math.NaN(), math.Inf(-1)} {
		if err := g.SetGain(v); err == nil {
			t.Errorf("SetGain(%v) should fail", v)
		}
	}
	if err := g.SetGain(0); err != nil {
		t.Errorf("SetGain(0) failed: %v", err)
	}
}

func TestGainConvergesToTarget(t *testing.T) {
	g, err := NewGain(48000)
	if err != nil {
		t.Fatalf("NewGain failed: %v", err)
	}
	if err := g.SetGain(0.5); err != nil {
		t.Fatalf("SetGain failed: %v", err)
	}

	// Ramp is 50 ms = 2400 samples at 48 kHz; give it headroom.
	buf := testutil.Ones(4000)
	g.ProcessInPlace(buf)

	if g.CurrentGain() != 0.5 {
		t.Errorf("smoothed gain did not settle: %v", g.CurrentGain())
	}
	if buf[len(buf)-1] != 0.5 {
		t.Errorf("settled output = %v, want 0.5", buf[len(buf)-1])
	}
	testutil.RequireFinite(t, buf)
}

func TestGainRampIsMonotonic(t *testing.T) {
	g, err := NewGain(48000)
	if err != nil {
		t.Fatalf("NewGain failed: %v", err)
	}
	if err := g.SetGain(2.0); err != nil {
		t.Fatalf("SetGain failed: %v", err)
	}

	buf := testutil.Ones(4000)
	g.ProcessInPlace(buf)

	for i := 1; i < len(buf); i++ {
		if buf[i] < buf[i-1] {
			t.Fatalf("ramp not monotonic at %d: %v -> %v", i, buf[i-1], buf[i])
		}
	}
	if buf[len(buf)-1] != 2.0 {
		t.Errorf("settled output = %v, want 2", buf[len(buf)-1])
	}
}

func TestGainZeroRampIsInstant(t *testing.T) {
	g, err := NewGain(48000, WithGainRamp(0))
	if err != nil {
		t.Fatalf("NewGain failed: %v", err)
	}
	if err := g.SetGain(0.25); err != nil {
		t.Fatalf("SetGain failed: %v", err)
	}
	if got := g.ProcessSample(1.0); got != 0.25 {
		t.Errorf("instant gain output = %v, want 0.25", got)
	}
}

func TestGainResetSnapsToTarget(t *testing.T) {
	g, err := NewGain(48000)
	if err != nil {
		t.Fatalf("NewGain failed: %v", err)
	}
	if err := g.SetGain(0.5); err != nil {
		t.Fatalf("SetGain failed: %v", err)
	}
	g.Reset()
	if got := g.ProcessSample(1.0); got != 0.5 {
		t.Errorf("output after reset = %v, want 0.5", got)
	}
}

func TestGainOptionValue(t *testing.T) {
	g, err := NewGain(44100, WithGainValue(2.0))
	if err != nil {
		t.Fatalf("NewGain failed: %v", err)
	}
	if got := g.ProcessSample(1.0); got != 2.0 {
		t.Errorf("initial gain output = %v, want 2", got)
	}

	if _, err := NewGain(44100, WithGainValue(-1)); err == nil {
		t.Error("negative initial gain should fail")
	}
}
