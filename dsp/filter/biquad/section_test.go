package biquad

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedalboard/internal/testutil"
)

func TestNewRejectsNonFiniteCoefficients(t *testing.T) {
	if _, err := New(Coefficients{B0: math.NaN()}); err == nil {
		t.Error("NaN coefficient should fail")
	}
	if _, err := New(Coefficients{A2: math.Inf(1)}); err == nil {
		t.Error("infinite coefficient should fail")
	}
}

func TestIdentityPassthrough(t *testing.T) {
	s, err := New(Identity())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	in := testutil.DeterministicNoise(1, 0.9, 512)
	out := append([]float64(nil), in...)
	s.ProcessBlock(out)
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	coeffs := Coefficients{B0: 0.2, B1: 0.4, B2: 0.2, A1: -0.5, A2: 0.3}
	blockwise, err := New(coeffs)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	samplewise, err := New(coeffs)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Odd length exercises the unrolled tail.
	in := testutil.DeterministicNoise(42, 1.0, 1023)
	blockOut := append([]float64(nil), in...)
	blockwise.ProcessBlock(blockOut)

	sampleOut := make([]float64, len(in))
	for i, v := range in {
		sampleOut[i] = samplewise.ProcessSample(v)
	}

	testutil.RequireSliceNearlyEqual(t, blockOut, sampleOut, 1e-12)
}

func TestResetClearsState(t *testing.T) {
	s, err := New(Coefficients{B0: 0.5, B1: 0.5, A1: -0.9})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	first := s.ProcessSample(1.0)
	s.ProcessSample(0.5)
	s.Reset()
	if got := s.ProcessSample(1.0); got != first {
		t.Errorf("first sample after reset = %v, want %v", got, first)
	}
}

func TestSetCoefficientsKeepsState(t *testing.T) {
	s, err := New(Coefficients{B0: 1, A1: -0.5})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.ProcessSample(1.0)
	if err := s.SetCoefficients(Coefficients{B0: 0.5, A1: -0.5}); err != nil {
		t.Fatalf("SetCoefficients failed: %v", err)
	}

	// The retained state keeps feeding the recursion after a retune.
	if got := s.ProcessSample(0); got == 0 {
		t.Error("state should survive a coefficient change")
	}
}

func TestMagnitudeAtIdentity(t *testing.T) {
	s, err := New(Identity())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for _, w := range []float64{0, 0.1, 1, math.Pi} {
		if got := s.MagnitudeAt(w); math.Abs(got-1) > 1e-12 {
			t.Errorf("identity magnitude at %v = %v, want 1", w, got)
		}
	}
}
