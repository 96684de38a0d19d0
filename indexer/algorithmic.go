package indexer

import "math"

// AlgorithmicBuilder builds indexers that scale each value arithmetically.
type AlgorithmicBuilder struct{}

// AlgorithmicIndexer clamps a value to [min, max] and scales it linearly onto
// the bucket indices, rounding half away from zero.
type AlgorithmicIndexer struct {
	min    float64
	max    float64
	span   float64
	step   float64 // buckets per unit of value
	divide bool    // step overflowed; scale by span instead
	last   int
	mid    int
}

// Build implements Builder.
//
//nolint:ireturn // satisfies Builder
func (AlgorithmicBuilder) Build(lo, hi float64, n int) Indexer {
	return NewAlgorithmic(lo, hi, n)
}

// NewAlgorithmic returns an AlgorithmicIndexer for [lo, hi] and n buckets.
// It panics if lo >= hi or n < 1.
func NewAlgorithmic(lo, hi float64, n int) *AlgorithmicIndexer {
	checkBuildArgs(lo, hi, n)
	last := n - 1
	span := hi - lo
	step := float64(last) / span
	if math.IsInf(span, 0) {
		// Only interior points and the two extremes are distinguishable.
		step = 0
	}
	return &AlgorithmicIndexer{
		min:    lo,
		max:    hi,
		span:   span,
		step:   step,
		divide: math.IsInf(step, 0), // span is subnormal or close to it
		last:   last,
		mid:    n / 2,
	}
}

// Index implements Indexer. NaN maps to bucket 0.
func (ix *AlgorithmicIndexer) Index(v float64) int {
	switch {
	case !(v > ix.min):
		return 0
	case v >= ix.max:
		return ix.last
	case ix.step == 0:
		if ix.last == 0 {
			return 0
		}
		return ix.mid
	}
	var pos float64
	if ix.divide {
		pos = (v - ix.min) / ix.span * float64(ix.last)
	} else {
		pos = (v - ix.min) * ix.step
	}
	return min(max(int(math.Round(pos)), 0), ix.last)
}

// boundary estimates where bucket i begins: the rounding midpoint
// min + (i-0.5)/step. The result is not finite for an infinite span.
func (ix *AlgorithmicIndexer) boundary(i int) float64 {
	return ix.min + (float64(i)-0.5)*(ix.span/float64(ix.last))
}

// Step returns the scale factor (n-1)/(max-min). It is +Inf when the
// span is too narrow for the factor to be represented.
func (ix *AlgorithmicIndexer) Step() float64 { return ix.step }
