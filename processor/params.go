package processor

import (
	"math"
	"sync/atomic"
)

// parameterSet stores normalized parameters as independently atomic float32
// scalars. Control-context writes never tear against audio-context reads;
// consumers load all values at a block boundary and apply them together.
type parameterSet struct {
	values []uint32
}

func newParameterSet(defaults []float32) parameterSet {
	p := parameterSet{values: make([]uint32, len(defaults))}
	for i, v := range defaults {
		p.values[i] = math.Float32bits(v)
	}
	return p
}

func (p *parameterSet) count() int {
	return len(p.values)
}

// get returns the parameter at index, or 0 when out of range.
func (p *parameterSet) get(index int) float32 {
	if index < 0 || index >= len(p.values) {
		return 0
	}
	return math.Float32frombits(atomic.LoadUint32(&p.values[index]))
}

// set stores the parameter at index; out-of-range indices are ignored.
func (p *parameterSet) set(index int, value float32) {
	if index < 0 || index >= len(p.values) {
		return
	}
	atomic.StoreUint32(&p.values[index], math.Float32bits(value))
}

// snapshotInto loads every parameter into dst and reports whether any value
// differs from what dst held before.
func (p *parameterSet) snapshotInto(dst []float32) bool {
	changed := false
	for i := range p.values {
		v := math.Float32frombits(atomic.LoadUint32(&p.values[i]))
		if dst[i] != v {
			dst[i] = v
			changed = true
		}
	}
	return changed
}
