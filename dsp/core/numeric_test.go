package core

import (
	"math"
	"testing"
)

func TestClamp_LimitsToRange(t *testing.T) {
	if got := Clamp(1.5, 0, 1); got != 1 {
		t.Errorf("Clamp(1.5, 0, 1) = %f, want 1", got)
	}
	if got := Clamp(-0.5, 0, 1); got != 0 {
		t.Errorf("Clamp(-0.5, 0, 1) = %f, want 0", got)
	}
	if got := Clamp(0.25, 0, 1); got != 0.25 {
		t.Errorf("Clamp(0.25, 0, 1) = %f, want 0.25", got)
	}
}

func TestClamp_SwappedBounds(t *testing.T) {
	if got := Clamp(2, 1, 0); got != 1 {
		t.Errorf("Clamp(2, 1, 0) = %f, want 1", got)
	}
}

func TestClampUnit(t *testing.T) {
	if got := ClampUnit(3); got != 1 {
		t.Errorf("ClampUnit(3) = %f, want 1", got)
	}
	if got := ClampUnit(-3); got != 0 {
		t.Errorf("ClampUnit(-3) = %f, want 0", got)
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Error("values within eps should compare equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-12) {
		t.Error("distant values should not compare equal")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-30); got != 0 {
		t.Errorf("FlushDenormals(1e-30) = %g, want 0", got)
	}
	if got := FlushDenormals(0.5); got != 0.5 {
		t.Errorf("FlushDenormals(0.5) = %g, want 0.5", got)
	}
}

func TestDBConversionRoundTrip(t *testing.T) {
	for _, db := range []float64{-60, -20, -6, 0, 6} {
		lin := DBToLinear(db)
		back := LinearToDB(lin)
		if !NearlyEqual(db, back, 1e-9) {
			t.Errorf("round trip for %f dB gave %f", db, back)
		}
	}
}

func TestLinearToDB_EdgeCases(t *testing.T) {
	if !math.IsInf(LinearToDB(0), -1) {
		t.Error("LinearToDB(0) should be -Inf")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Error("LinearToDB(-1) should be NaN")
	}
}
