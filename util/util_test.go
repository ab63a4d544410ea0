package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"c": 1, "a": 2, "b": 3}
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(m))
}

func TestClamp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(5, Clamp(5, 0, 10))
	assert.Equal(0, Clamp(-1, 0, 10))
	assert.Equal(10, Clamp(11, 0, 10))
}

func TestClampVelocity(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint8(1), ClampVelocity(0))
	assert.Equal(uint8(127), ClampVelocity(300))
	assert.Equal(uint8(64), ClampVelocity(64))
}
