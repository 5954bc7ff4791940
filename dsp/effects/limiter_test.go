package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedalboard/internal/testutil"
)

func TestNewLimiterDefaults(t *testing.T) {
	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatalf("NewLimiter failed: %v", err)
	}
	if l.Threshold() != 0 {
		t.Errorf("default ceiling = %v dB, want 0", l.Threshold())
	}
}

func TestLimiterSetterValidation(t *testing.T) {
	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatalf("NewLimiter failed: %v", err)
	}
	if err := l.SetThreshold(math.Inf(1)); err == nil {
		t.Error("infinite threshold should fail")
	}
	if err := l.SetRelease(0); err == nil {
		t.Error("zero release should fail")
	}
	if err := l.SetSampleRate(-1); err == nil {
		t.Error("negative sample rate should fail")
	}
	if err := l.SetRelease(50); err != nil {
		t.Errorf("SetRelease(50) failed: %v", err)
	}
	if l.Release() != 50 {
		t.Errorf("release = %v, want 50", l.Release())
	}
}

func TestLimiterStaticCurveHoldsCeiling(t *testing.T) {
	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatalf("NewLimiter failed: %v", err)
	}
	if err := l.SetThreshold(-6); err != nil {
		t.Fatalf("SetThreshold failed: %v", err)
	}

	ceiling := math.Pow(10, -6.0/20)
	for _, mag := range []float64{0.6, 1.0, 2.0, 4.0} {
		out := mag * l.SteadyStateGain(mag)
		if math.Abs(out-ceiling) > 0.02 {
			t.Errorf("settled output for %v = %v, want ~%v", mag, out, ceiling)
		}
	}
}

func TestLimiterUnityBelowCeiling(t *testing.T) {
	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatalf("NewLimiter failed: %v", err)
	}
	if g := l.SteadyStateGain(0.5); g != 1 {
		t.Errorf("gain below ceiling = %v, want 1", g)
	}
}

func TestLimiterCatchesPeaksFast(t *testing.T) {
	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatalf("NewLimiter failed: %v", err)
	}
	if err := l.SetThreshold(-6); err != nil {
		t.Fatalf("SetThreshold failed: %v", err)
	}

	buf := testutil.DC(1.0, 4800)
	l.ProcessInPlace(buf)
	testutil.RequireFinite(t, buf)

	// The 0.1 ms attack settles within a few samples of a step.
	ceiling := math.Pow(10, -6.0/20)
	for i := 100; i < len(buf); i++ {
		if buf[i] > ceiling+0.02 {
			t.Fatalf("overshoot at %d: %v, ceiling %v", i, buf[i], ceiling)
		}
	}
}

func TestLimiterReset(t *testing.T) {
	l, err := NewLimiter(48000)
	if err != nil {
		t.Fatalf("NewLimiter failed: %v", err)
	}
	l.ProcessInPlace(testutil.DC(2.0, 4096))
	l.Reset()
	if got := l.ProcessSample(0.1); math.Abs(got-0.1) > 1e-6 {
		t.Errorf("first sample after reset = %v, want ~0.1", got)
	}
}
