package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool_ReturnsResetBuffers(t *testing.T) {
	pool := NewBufferPool(64)

	buf := pool.Get()
	buf.WriteString("figma")
	pool.Put(buf)

	again := pool.Get()
	assert.Equal(t, 0, again.Len())
	pool.Put(nil)
}
