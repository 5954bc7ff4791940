package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedalboard/internal/testutil"
)

func TestNewChorusValidation(t *testing.T) {
	if _, err := NewChorus(0); err == nil {
		t.Error("NewChorus(0) should fail")
	}
	c, err := NewChorus(48000)
	if err != nil {
		t.Fatalf("NewChorus failed: %v", err)
	}
	if err := c.SetRateHz(-1); err == nil {
		t.Error("negative rate should fail")
	}
	if err := c.SetDepth(1.5); err == nil {
		t.Error("depth above 1 should fail")
	}
	if err := c.SetCenterDelay(0.1); err == nil {
		t.Error("center delay above 50 ms should fail")
	}
	if err := c.SetFeedback(0.96); err == nil {
		t.Error("feedback above 0.95 should fail")
	}
	if err := c.SetMix(math.NaN()); err == nil {
		t.Error("NaN mix should fail")
	}
}

func TestChorusDryPassthrough(t *testing.T) {
	c, err := NewChorus(48000)
	if err != nil {
		t.Fatalf("NewChorus failed: %v", err)
	}
	if err := c.SetMix(0); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}

	in := testutil.DeterministicSine(440, 48000, 0.5, 1024)
	out := append([]float64(nil), in...)
	c.ProcessInPlace(out)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestChorusZeroDepthIsStaticDelay(t *testing.T) {
	const sr = 48000.0
	c, err := NewChorus(sr)
	if err != nil {
		t.Fatalf("NewChorus failed: %v", err)
	}
	if err := c.SetDepth(0); err != nil {
		t.Fatalf("SetDepth failed: %v", err)
	}
	if err := c.SetMix(1); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}
	if err := c.SetCenterDelay(0.007); err != nil {
		t.Fatalf("SetCenterDelay failed: %v", err)
	}

	buf := testutil.Impulse(1024, 0)
	c.ProcessInPlace(buf)
	testutil.RequireFinite(t, buf)

	// 7 ms at 48 kHz is 336 samples; the wet path reads the line right
	// after writing, so the impulse lands 335 samples later.
	peakIdx := 0
	for i, v := range buf {
		if math.Abs(v) > math.Abs(buf[peakIdx]) {
			peakIdx = i
		}
	}
	if peakIdx != 335 {
		t.Errorf("delayed impulse at %d, want 335", peakIdx)
	}
	if math.Abs(buf[peakIdx]-1) > 1e-9 {
		t.Errorf("delayed impulse amplitude = %v, want 1", buf[peakIdx])
	}
}

func TestChorusModulatedOutputStaysFinite(t *testing.T) {
	c, err := NewChorus(44100)
	if err != nil {
		t.Fatalf("NewChorus failed: %v", err)
	}
	if err := c.SetDepth(1); err != nil {
		t.Fatalf("SetDepth failed: %v", err)
	}
	if err := c.SetFeedback(0.9); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	if err := c.SetRateHz(5); err != nil {
		t.Fatalf("SetRateHz failed: %v", err)
	}

	buf := testutil.DeterministicNoise(3, 0.5, 44100)
	c.ProcessInPlace(buf)
	testutil.RequireFinite(t, buf)
}

func TestChorusResetSilences(t *testing.T) {
	c, err := NewChorus(48000)
	if err != nil {
		t.Fatalf("NewChorus failed: %v", err)
	}
	if err := c.SetMix(1); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}
	if err := c.SetFeedback(0.5); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}

	c.ProcessInPlace(testutil.DeterministicNoise(11, 0.8, 4096))
	c.Reset()

	silent := make([]float64, 4096)
	c.ProcessInPlace(silent)
	for i, v := range silent {
		if v != 0 {
			t.Fatalf("residual signal after reset at %d: %v", i, v)
		}
	}
}
