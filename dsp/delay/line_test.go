package delay

import (
	"math"
	"testing"
)

func TestNew_RejectsNonPositiveSize(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size 0")
	}
	if _, err := New(-4); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestLine_IntegerDelay(t *testing.T) {
	line, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 1; i <= 8; i++ {
		line.Write(float64(i))
	}

	if got := line.Read(1); got != 8 {
		t.Errorf("Read(1) = %f, want 8 (most recent)", got)
	}
	if got := line.Read(3); got != 6 {
		t.Errorf("Read(3) = %f, want 6", got)
	}
}

func TestLine_WrapsAround(t *testing.T) {
	line, _ := New(4)
	for i := 1; i <= 10; i++ {
		line.Write(float64(i))
	}
	if got := line.Read(1); got != 10 {
		t.Errorf("Read(1) after wrap = %f, want 10", got)
	}
	if got := line.Read(4); got != 7 {
		t.Errorf("Read(4) after wrap = %f, want 7", got)
	}
}

func TestLine_ReadFractional_MatchesIntegerOnWhole(t *testing.T) {
	line, _ := New(16)
	for i := 1; i <= 16; i++ {
		line.Write(float64(i))
	}

	for d := 1; d <= 8; d++ {
		want := line.Read(d)
		got := line.ReadFractional(float64(d))
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("ReadFractional(%d) = %f, want %f", d, got, want)
		}
	}
}

func TestLine_ReadFractional_InterpolatesRamp(t *testing.T) {
	line, _ := New(16)
	for i := 0; i < 16; i++ {
		line.Write(float64(i))
	}

	// Samples form a ramp, so fractional reads must land on the line.
	got := line.ReadFractional(3.5)
	want := 0.5 * (line.Read(3) + line.Read(4))
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ReadFractional(3.5) = %f, want %f", got, want)
	}
}

func TestLine_Reset(t *testing.T) {
	line, _ := New(8)
	for i := 0; i < 8; i++ {
		line.Write(1)
	}
	line.Reset()
	for d := 1; d <= 8; d++ {
		if got := line.Read(d); got != 0 {
			t.Fatalf("Read(%d) after Reset = %f, want 0", d, got)
		}
	}
}
