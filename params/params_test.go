package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeLaterTiersWin(t *testing.T) {
	assert := assert.New(t)

	defaults := map[string]any{"a": 1, "b": 1, "c": 1}
	section := map[string]any{"b": 2, "d": 2}
	chordHint := map[string]any{"c": 3}
	cli := map[string]any{"d": 4}

	merged := Merge(defaults, section, chordHint, cli)
	assert.Equal(map[string]any{"a": 1, "b": 2, "c": 3, "d": 4}, merged)
}

func TestMergeReplacesNestedMapsWholesale(t *testing.T) {
	assert := assert.New(t)

	lower := map[string]any{"nested": map[string]any{"x": 1, "y": 1}}
	upper := map[string]any{"nested": map[string]any{"x": 2}}

	merged := Merge(lower, upper)
	assert.Equal(map[string]any{"x": 2}, merged["nested"])
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	assert := assert.New(t)

	lower := map[string]any{"a": 1}
	upper := map[string]any{"a": 2}
	Merge(lower, upper)

	assert.Equal(1, lower["a"])
	assert.Equal(2, upper["a"])
}

func TestMergeIsIdempotentOverSameTiers(t *testing.T) {
	assert := assert.New(t)

	a := map[string]any{"x": 1}
	b := map[string]any{"x": 2, "y": 3}
	once := Merge(a, b)
	twice := Merge(once, b)
	assert.Equal(once, twice)
}

func TestStrictAccessorFailsOnMissingKey(t *testing.T) {
	assert := assert.New(t)

	acc := &Accessor{Family: "piano", Params: map[string]any{}}
	_, err := acc.Str("style", "fallback")
	assert.Error(err)

	var missing *MissingKeyError
	assert.ErrorAs(err, &missing)
	assert.Equal("piano", missing.Family)
	assert.Equal("style", missing.Key)
}

func TestLenientAccessorSubstitutesDefault(t *testing.T) {
	assert := assert.New(t)

	acc := &Accessor{Family: "piano", Params: map[string]any{}, Lenient: true}
	v, err := acc.Str("style", "fallback")
	assert.NoError(err)
	assert.Equal("fallback", v)

	n, err := acc.Int("octave", 4)
	assert.NoError(err)
	assert.Equal(4, n)
}

func TestAccessorAcceptsJSONNumberForms(t *testing.T) {
	assert := assert.New(t)

	acc := &Accessor{Family: "bass", Params: map[string]any{
		"octave":  float64(2),
		"delay":   0.02,
		"voices":  3,
		"enabled": true,
		"keys":    []any{"a", "b"},
	}}

	n, err := acc.Int("octave", 0)
	assert.NoError(err)
	assert.Equal(2, n)

	f, err := acc.Float("delay", 0)
	assert.NoError(err)
	assert.Equal(0.02, f)

	f, err = acc.Float("voices", 0)
	assert.NoError(err)
	assert.Equal(3.0, f)

	b, err := acc.Bool("enabled", false)
	assert.NoError(err)
	assert.True(b)

	list, err := acc.Strings("keys", nil)
	assert.NoError(err)
	assert.Equal([]string{"a", "b"}, list)
}

func TestAccessorRejectsWrongTypesInStrictMode(t *testing.T) {
	assert := assert.New(t)

	acc := &Accessor{Family: "drums", Params: map[string]any{"count": "three"}}
	_, err := acc.Int("count", 0)
	assert.Error(err)
}
