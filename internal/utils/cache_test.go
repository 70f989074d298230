package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	cache := GetCache()

	cache.Set("cache_test:a", "value", time.Minute)
	assert.Equal(t, "value", cache.Get("cache_test:a"))

	cache.Delete("cache_test:a")
	assert.Nil(t, cache.Get("cache_test:a"))

	assert.Nil(t, cache.Get("cache_test:never-set"))
}

func TestCacheExpiry(t *testing.T) {
	cache := GetCache()

	cache.Set("cache_test:b", 42, 10*time.Millisecond)
	assert.Equal(t, 42, cache.Get("cache_test:b"))

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, cache.Get("cache_test:b"))
}
