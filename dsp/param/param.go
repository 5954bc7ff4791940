// Package param converts normalized control values in [0, 1] to
// engineering-unit values. Mapping functions are pure and do not clamp;
// callers feeding UI values are responsible for constraining the input.
package param

import "math"

// MapLinear maps x in [0, 1] linearly onto [lo, hi].
// Values outside [0, 1] extrapolate.
func MapLinear(x, lo, hi float64) float64 {
	return lo + x*(hi-lo)
}

// MapLog maps x in [0, 1] onto [lo, hi] with exponential spacing,
// suitable for frequency or drive controls. Both lo and hi must be > 0.
func MapLog(x, lo, hi float64) float64 {
	return lo * math.Pow(hi/lo, x)
}

// NormalizeLinear is the inverse of MapLinear. Returns 0 when lo == hi.
func NormalizeLinear(v, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (v - lo) / (hi - lo)
}

// NormalizeLog is the inverse of MapLog. All of v, lo, hi must be > 0.
func NormalizeLog(v, lo, hi float64) float64 {
	if v <= 0 || lo <= 0 || hi <= 0 || hi == lo {
		return 0
	}
	return math.Log(v/lo) / math.Log(hi/lo)
}
