package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedalboard/internal/testutil"
)

func TestNewPhaserValidation(t *testing.T) {
	if _, err := NewPhaser(0); err == nil {
		t.Error("NewPhaser(0) should fail")
	}
	p, err := NewPhaser(48000)
	if err != nil {
		t.Fatalf("NewPhaser failed: %v", err)
	}
	if err := p.SetRateHz(0); err == nil {
		t.Error("zero rate should fail")
	}
	if err := p.SetCenterFrequencyHz(-100); err == nil {
		t.Error("negative center frequency should fail")
	}
	if err := p.SetDepth(-0.1); err == nil {
		t.Error("negative depth should fail")
	}
	if err := p.SetFeedback(1.0); err == nil {
		t.Error("feedback above 0.95 should fail")
	}
	if err := p.SetMix(2); err == nil {
		t.Error("mix above 1 should fail")
	}
}

func TestPhaserDryPassthrough(t *testing.T) {
	p, err := NewPhaser(48000)
	if err != nil {
		t.Fatalf("NewPhaser failed: %v", err)
	}
	if err := p.SetMix(0); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}

	in := testutil.DeterministicSine(440, 48000, 0.5, 1024)
	out := append([]float64(nil), in...)
	p.ProcessInPlace(out)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestPhaserAllpassPreservesSineLevel(t *testing.T) {
	p, err := NewPhaser(48000)
	if err != nil {
		t.Fatalf("NewPhaser failed: %v", err)
	}
	if err := p.SetDepth(0); err != nil {
		t.Fatalf("SetDepth failed: %v", err)
	}
	if err := p.SetFeedback(0); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	if err := p.SetMix(1); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}

	// With the LFO pinned the cascade is a static allpass chain, so a
	// steady sine keeps its amplitude.
	buf := testutil.DeterministicSine(1000, 48000, 0.5, 48000)
	p.ProcessInPlace(buf)
	testutil.RequireFinite(t, buf)

	rms := testutil.RMS(buf[24000:])
	want := 0.5 / math.Sqrt2
	if math.Abs(rms-want) > 0.01 {
		t.Errorf("allpass RMS = %v, want ~%v", rms, want)
	}
}

func TestPhaserModulationAltersSignal(t *testing.T) {
	p, err := NewPhaser(48000)
	if err != nil {
		t.Fatalf("NewPhaser failed: %v", err)
	}
	if err := p.SetDepth(1); err != nil {
		t.Fatalf("SetDepth failed: %v", err)
	}
	if err := p.SetRateHz(2); err != nil {
		t.Fatalf("SetRateHz failed: %v", err)
	}

	in := testutil.DeterministicSine(800, 48000, 0.5, 8192)
	out := append([]float64(nil), in...)
	p.ProcessInPlace(out)
	testutil.RequireFinite(t, out)

	diff, err := testutil.MaxAbsDiff(in, out)
	if err != nil {
		t.Fatalf("MaxAbsDiff failed: %v", err)
	}
	if diff < 1e-3 {
		t.Errorf("phaser left signal unchanged: max diff %v", diff)
	}
}

func TestPhaserResetSilences(t *testing.T) {
	p, err := NewPhaser(48000)
	if err != nil {
		t.Fatalf("NewPhaser failed: %v", err)
	}
	if err := p.SetFeedback(0.9); err != nil {
		t.Fatalf("SetFeedback failed: %v", err)
	}
	if err := p.SetMix(1); err != nil {
		t.Fatalf("SetMix failed: %v", err)
	}

	p.ProcessInPlace(testutil.DeterministicNoise(5, 0.8, 4096))
	p.Reset()

	silent := make([]float64, 4096)
	p.ProcessInPlace(silent)
	for i, v := range silent {
		if v != 0 {
			t.Fatalf("residual signal after reset at %d: %v", i, v)
		}
	}
}
