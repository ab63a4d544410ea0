package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimeSignature(t *testing.T) {
	assert := assert.New(t)

	ts, err := ParseTimeSignature("6/8")
	assert.NoError(err)
	assert.Equal(6, ts.Num)
	assert.Equal(8, ts.Denom)
	assert.Equal(3.0, ts.BeatsPerBar())
	assert.Equal("6/8", ts.String())

	for _, bad := range []string{"", "4", "4/0", "0/4", "a/b", "4/4/4"} {
		_, err := ParseTimeSignature(bad)
		assert.Error(err, bad)
	}
}
