package sparkline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRamp(t *testing.T) {
	assert.Equal(t, Ramp{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}, DefaultRamp())
	assert.Equal(t, Ramp{"a", "b", "c"}, ParseRamp("abc"))
	assert.Nil(t, ParseRamp(""))

	// Combining sequences and emoji modifiers stay together.
	assert.Equal(t, Ramp{"e\u0301", "x"}, ParseRamp("e\u0301x"))
	assert.Equal(t, Ramp{"👍🏽", "👍"}, ParseRamp("👍🏽👍"))
}

func TestRampMiddle(t *testing.T) {
	assert.Equal(t, 4, DefaultRamp().Middle())
	assert.Equal(t, 1, Ramp{"a", "b", "c"}.Middle())
	assert.Equal(t, 0, Ramp{"a"}.Middle())
}

func TestRampString(t *testing.T) {
	assert.Equal(t, DefaultTicks, DefaultRamp().String())
}

func TestDefaultRamp_ReturnsCopy(t *testing.T) {
	r := DefaultRamp()
	r[0] = "X"
	assert.Equal(t, "▁", DefaultRamp()[0])
	assert.Equal(t, "▁▅█", Render([]float64{1, 2, 3}))
}
