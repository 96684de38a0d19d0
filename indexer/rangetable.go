package indexer

import (
	"fmt"
	"math"
	"sort"
)

// RangeTableBuilder builds indexers backed by an explicit bucket table.
type RangeTableBuilder struct{}

// Bucket is one row of a range table: the half-open interval [Start, End)
// mapped to Index. The final bucket of a table is Closed, so End itself
// (always +Inf) belongs to it.
type Bucket struct {
	Start  float64
	End    float64
	Index  int
	Closed bool
}

// Contains reports whether v falls inside the bucket.
func (b Bucket) Contains(v float64) bool {
	if v < b.Start {
		return false
	}
	return v < b.End || (b.Closed && v == b.End)
}

func (b Bucket) String() string {
	closer := ")"
	if b.Closed {
		closer = "]"
	}
	return fmt.Sprintf("[%v, %v%s -> %d", b.Start, b.End, closer, b.Index)
}

// RangeTableIndexer looks values up in an ordered table of buckets that
// covers the whole real line. The first bucket starts at -Inf and the last
// ends, inclusively, at +Inf, so infinities resolve to the extreme buckets
// without clamping.
type RangeTableIndexer struct {
	buckets []Bucket
}

// Build implements Builder.
//
//nolint:ireturn // satisfies Builder
func (RangeTableBuilder) Build(lo, hi float64, n int) Indexer {
	return NewRangeTable(lo, hi, n)
}

// NewRangeTable returns a RangeTableIndexer for [lo, hi] and n buckets.
// It panics if lo >= hi or n < 1.
//
// Boundaries follow the same linear relation as the algorithmic strategy:
// bucket i starts at the first float64 whose scaled offset (v-lo)*step
// rounds to i, i.e. near lo + (i-0.5)/step. Each boundary is located exactly
// so that both strategies agree on every input.
func NewRangeTable(lo, hi float64, n int) *RangeTableIndexer {
	checkBuildArgs(lo, hi, n)
	ref := NewAlgorithmic(lo, hi, n)

	starts := make([]float64, n)
	starts[0] = math.Inf(-1)
	for i := 1; i < n; i++ {
		starts[i] = threshold(ref, i)
	}

	buckets := make([]Bucket, n)
	for i := range n {
		b := Bucket{Start: starts[i], Index: i}
		if i+1 < n {
			b.End = starts[i+1]
		} else {
			b.End = math.Inf(1)
			b.Closed = true
		}
		buckets[i] = b
	}
	return &RangeTableIndexer{buckets: buckets}
}

// Index implements Indexer. NaN maps to bucket 0.
func (t *RangeTableIndexer) Index(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	last := len(t.buckets) - 1
	i := sort.Search(len(t.buckets), func(i int) bool {
		return i == last || v < t.buckets[i].End
	})
	b := t.buckets[i]
	if !b.Contains(v) {
		panic(fmt.Sprintf("indexer: no bucket contains %v (nearest %s)", v, b))
	}
	return b.Index
}

// Buckets returns a copy of the table, ordered by Start.
func (t *RangeTableIndexer) Buckets() []Bucket {
	out := make([]Bucket, len(t.buckets))
	copy(out, t.buckets)
	return out
}

// Len returns the number of buckets.
func (t *RangeTableIndexer) Len() int { return len(t.buckets) }

// threshold returns the smallest float64 x in (ref.min, ref.max] for which
// ref.Index(x) >= i, for 1 <= i <= ref.last. The search starts from the
// closed-form midpoint and widens a bracket around it by doubling ulp steps,
// then bisects over the total order of float64 values. ref.Index is
// monotone, so the result is exact even when the estimate is off.
func threshold(ref *AlgorithmicIndexer, i int) float64 {
	lo, hi := orderKey(ref.min), orderKey(ref.max) // Index(lo) = 0 < i <= Index(hi)
	if est := ref.boundary(i); est > ref.min && est <= ref.max && !math.IsInf(est, 0) {
		lo, hi = bracket(ref, i, orderKey(est), lo, hi)
	}
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if ref.Index(fromOrderKey(mid)) >= i {
			hi = mid
		} else {
			lo = mid
		}
	}
	return fromOrderKey(hi)
}

// bracket narrows the order keys (lo, hi] to an interval around the
// estimate k that still holds the threshold for bucket i. k must lie in
// (lo, hi].
func bracket(ref *AlgorithmicIndexer, i int, k, lo, hi uint64) (uint64, uint64) {
	reaches := func(k uint64) bool { return ref.Index(fromOrderKey(k)) >= i }
	if reaches(k) {
		hi = k
		for d := uint64(1); d != 0 && k-lo > d; d <<= 1 {
			if !reaches(k - d) {
				return k - d, hi
			}
			hi = k - d
		}
		return lo, hi
	}
	lo = k
	for d := uint64(1); d != 0 && hi-k > d; d <<= 1 {
		if reaches(k + d) {
			return lo, k + d
		}
		lo = k + d
	}
	return lo, hi
}

const signBit = 1 << 63

// orderKey maps a non-NaN float64 to a uint64 with the same ordering.
func orderKey(f float64) uint64 {
	bits := math.Float64bits(f)
	if bits&signBit != 0 {
		return ^bits
	}
	return bits | signBit
}

func fromOrderKey(k uint64) float64 {
	if k&signBit != 0 {
		return math.Float64frombits(k &^ signBit)
	}
	return math.Float64frombits(^k)
}
