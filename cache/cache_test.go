package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemory(t *testing.T) {
	c := NewMemory(time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("k", "v")
	got, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)

	c.Invalidate("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)

	c.Set("k", 1)
	_, ok := c.Get("k")
	assert.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestMemory_Overwrite(t *testing.T) {
	c := NewMemory(time.Minute)

	c.Set("k", "old")
	c.Set("k", "new")

	got, _ := c.Get("k")
	assert.Equal(t, "new", got)
}
