package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameThrottle(t *testing.T) {
	assert.Nil(t, NewFrameThrottle(0, 5))

	var disabled *FrameThrottle
	for range 100 {
		assert.True(t, disabled.Allow())
	}

	th := NewFrameThrottle(0.001, 3)
	assert.True(t, th.Allow())
	assert.True(t, th.Allow())
	assert.True(t, th.Allow())
	assert.False(t, th.Allow(), "burst exhausted")

	assert.NotNil(t, NewFrameThrottle(1, 0), "burst is clamped to one")
}
