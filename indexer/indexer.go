// Package indexer maps sample values onto a fixed number of discrete buckets.
//
// An Indexer is built for one value range and one bucket count. Two strategies
// are provided: Algorithmic scales each value with a single linear factor, and
// RangeTable precomputes an ordered table of half-open sub-ranges and searches
// it. Both place bucket boundaries identically for finite input.
package indexer

import (
	"errors"
	"fmt"
	"strings"
)

// Indexer maps a value to a bucket index in [0, n-1], where n is the bucket
// count the Indexer was built for.
type Indexer interface {
	Index(v float64) int
}

// Builder constructs an Indexer for the range [lo, hi] split into n buckets.
// Callers must ensure lo < hi and n >= 1.
type Builder interface {
	Build(lo, hi float64, n int) Indexer
}

// ErrUnknownStrategy is returned by ParseStrategy for unrecognized names.
var ErrUnknownStrategy = errors.New("unknown indexer strategy")

// Strategy selects a Builder.
type Strategy int

const (
	Algorithmic Strategy = iota
	RangeTable
)

var strategyNames = [...]string{
	Algorithmic: "algorithmic",
	RangeTable:  "range-table",
}

func (s Strategy) String() string {
	if s >= 0 && int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy resolves a strategy name as used in flags and config files.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "algorithmic", "algo":
		return Algorithmic, nil
	case "range-table", "rangetable", "table":
		return RangeTable, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Builder returns the Builder for s. Unknown strategies fall back to
// Algorithmic.
//
//nolint:ireturn // factory returns interface by design
func (s Strategy) Builder() Builder {
	if s == RangeTable {
		return RangeTableBuilder{}
	}
	return AlgorithmicBuilder{}
}

func checkBuildArgs(lo, hi float64, n int) {
	if n < 1 {
		panic(fmt.Sprintf("indexer: bucket count %d < 1", n))
	}
	if !(lo < hi) {
		panic(fmt.Sprintf("indexer: invalid range [%v, %v]", lo, hi))
	}
}
