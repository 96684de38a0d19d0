package sparkline

import (
	"strings"

	"github.com/rivo/uniseg"
)

// DefaultTicks is the default eight-level block ramp.
const DefaultTicks = "▁▂▃▄▅▆▇█"

// Ramp is an ordered list of symbols, lowest magnitude first. Each symbol is
// a single grapheme cluster and may span several runes.
type Ramp []string

var defaultRamp = ParseRamp(DefaultTicks)

// DefaultRamp returns DefaultTicks split into symbols. Each call returns a
// new slice.
func DefaultRamp() Ramp {
	return append(Ramp(nil), defaultRamp...)
}

// ParseRamp splits s into one symbol per user-perceived character, so
// "👍🏽" or "é" count as single symbols.
func ParseRamp(s string) Ramp {
	var r Ramp
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		r = append(r, g.Str())
	}
	return r
}

// Middle returns the index used for degenerate ranges.
func (r Ramp) Middle() int { return len(r) / 2 }

func (r Ramp) String() string { return strings.Join(r, "") }
