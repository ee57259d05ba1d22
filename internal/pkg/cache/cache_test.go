package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTL_SetGetEvict(t *testing.T) {
	c := NewTTL[int64, string](10, time.Minute)

	c.Set(1, "admin")
	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "admin", v)

	c.Evict(1)
	_, ok = c.Get(1)
	assert.False(t, ok)
}

func TestTTL_ExpiresByAge(t *testing.T) {
	c := NewTTL[string, int](10, 20*time.Millisecond)
	c.Set("k", 7)

	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestTTL_Purge(t *testing.T) {
	c := NewTTL[string, int](10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()

	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.False(t, ok)
}
