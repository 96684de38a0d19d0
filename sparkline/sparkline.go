// Package sparkline renders numeric series as single-line glyph sparklines.
//
//	sparkline.Render([]float64{1, 2, 3, 4, 5, 6, 7, 8}) // "▁▂▃▄▅▆▇█"
//
// A Renderer maps each sample to one symbol of a Ramp. The range is either
// fixed at construction or taken from the data on every call; the mapping
// from value to symbol is delegated to an indexer.Strategy. NaN samples are
// skipped and contribute nothing to the output.
package sparkline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bamsammich/spark/indexer"
)

var (
	// ErrEmptyRamp is returned by New when the ramp has no symbols.
	ErrEmptyRamp = errors.New("symbol ramp is empty")
	// ErrInvalidRange is returned by New for a fixed range with a NaN bound
	// or min > max.
	ErrInvalidRange = errors.New("invalid fixed range")
)

// Renderer turns samples into sparkline strings. Its configuration is fixed
// at construction, so a Renderer is safe for concurrent use.
type Renderer struct {
	ramp     Ramp
	strategy indexer.Strategy
	fixed    bool
	lo, hi   float64
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRamp sets the symbol ramp. The ramp is copied.
func WithRamp(r Ramp) Option {
	return func(rd *Renderer) {
		rd.ramp = append(Ramp(nil), r...)
	}
}

// WithRange fixes the value range instead of deriving it from each input.
// Samples outside the range land in the extreme buckets.
func WithRange(lo, hi float64) Option {
	return func(rd *Renderer) {
		rd.fixed = true
		rd.lo, rd.hi = lo, hi
	}
}

// WithStrategy selects how values are assigned to buckets.
func WithStrategy(s indexer.Strategy) Option {
	return func(rd *Renderer) {
		rd.strategy = s
	}
}

// New returns a Renderer using DefaultRamp, the algorithmic strategy and a
// data-derived range unless overridden by opts.
func New(opts ...Option) (*Renderer, error) {
	rd := &Renderer{ramp: DefaultRamp()}
	for _, opt := range opts {
		opt(rd)
	}
	if len(rd.ramp) == 0 {
		return nil, ErrEmptyRamp
	}
	if rd.fixed && (math.IsNaN(rd.lo) || math.IsNaN(rd.hi) || rd.lo > rd.hi) {
		return nil, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, rd.lo, rd.hi)
	}
	return rd, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew(opts ...Option) *Renderer {
	rd, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return rd
}

var defaultRenderer = MustNew()

// Render renders samples with the default configuration.
func Render(samples []float64) string {
	return defaultRenderer.Render(samples)
}

// Ramp returns a copy of the renderer's symbol ramp.
func (rd *Renderer) Ramp() Ramp { return append(Ramp(nil), rd.ramp...) }

// Strategy returns the configured indexer strategy.
func (rd *Renderer) Strategy() indexer.Strategy { return rd.strategy }

// FixedRange returns the fixed range, if one was configured.
func (rd *Renderer) FixedRange() (lo, hi float64, ok bool) {
	return rd.lo, rd.hi, rd.fixed
}

// Render returns one symbol per non-NaN sample, in input order.
func (rd *Renderer) Render(samples []float64) string {
	var b strings.Builder
	b.Grow(len(samples) * len(rd.ramp[0]))
	rd.each(samples, func(idx int) {
		b.WriteString(rd.ramp[idx])
	})
	return b.String()
}

// Indices returns the bucket index chosen for each non-NaN sample.
func (rd *Renderer) Indices(samples []float64) []int {
	out := make([]int, 0, len(samples))
	rd.each(samples, func(idx int) {
		out = append(out, idx)
	})
	return out
}

func (rd *Renderer) each(samples []float64, emit func(idx int)) {
	lo, hi, ok := rd.lo, rd.hi, rd.fixed
	if !ok {
		lo, hi, ok = Bounds(samples)
	}
	if !ok {
		return
	}

	if lo == hi {
		mid := rd.ramp.Middle()
		for _, v := range samples {
			if !math.IsNaN(v) {
				emit(mid)
			}
		}
		return
	}

	ix := rd.strategy.Builder().Build(lo, hi, len(rd.ramp))
	for _, v := range samples {
		if !math.IsNaN(v) {
			emit(ix.Index(v))
		}
	}
}

// Bounds returns the range a Renderer without a fixed range would use for
// samples. NaNs are ignored. Infinite samples do not stretch the range when
// finite samples exist; they map to the extreme buckets instead. ok is false
// when there is no non-NaN sample.
func Bounds(samples []float64) (lo, hi float64, ok bool) {
	var (
		finite       bool
		infLo, infHi float64
		seenInf      bool
	)
	for _, v := range samples {
		switch {
		case math.IsNaN(v):
			continue
		case math.IsInf(v, 0):
			if !seenInf {
				infLo, infHi, seenInf = v, v, true
				continue
			}
			infLo, infHi = math.Min(infLo, v), math.Max(infHi, v)
		case !finite:
			lo, hi, finite = v, v, true
		default:
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if finite {
		return lo, hi, true
	}
	if seenInf {
		return infLo, infHi, true
	}
	return 0, 0, false
}
