package ratelimiter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnlimited(t *testing.T) {
	rl := New(0, 0)
	for i := 0; i < 1000; i++ {
		assert.True(t, rl.Allow())
	}
}

func TestBurstThenReject(t *testing.T) {
	rl := New(1, 2)
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}
