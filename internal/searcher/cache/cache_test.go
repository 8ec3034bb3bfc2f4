package cache

import (
	"strings"
	"testing"

	"github.com/zonesearch/zonesearch/pkg/config"
)

// TestBuildKeyNormalisesWhitespaceAndCase verifies equivalent spellings of a
// query share one cache entry.
func TestBuildKeyNormalisesWhitespaceAndCase(t *testing.T) {
	c := New(nil, config.RedisConfig{})
	base := c.buildKey("fox jumps", 10)
	for _, variant := range []string{"Fox Jumps", "  fox   jumps  ", "FOX\tJUMPS"} {
		if got := c.buildKey(variant, 10); got != base {
			t.Errorf("buildKey(%q) = %q, want %q", variant, got, base)
		}
	}
}

// TestBuildKeyPreservesTermOrder verifies reordered queries get distinct
// keys; phrase semantics depend on atom order.
func TestBuildKeyPreservesTermOrder(t *testing.T) {
	c := New(nil, config.RedisConfig{})
	if c.buildKey("fox jumps", 10) == c.buildKey("jumps fox", 10) {
		t.Error("reordered queries must not share a cache key")
	}
}

// TestBuildKeyVariesWithK verifies the result count is part of the key.
func TestBuildKeyVariesWithK(t *testing.T) {
	c := New(nil, config.RedisConfig{})
	if c.buildKey("fox", 5) == c.buildKey("fox", 10) {
		t.Error("different result counts must not share a cache key")
	}
}

// TestBuildKeyPrefix verifies every key carries the namespace prefix
// Invalidate flushes by.
func TestBuildKeyPrefix(t *testing.T) {
	c := New(nil, config.RedisConfig{})
	if key := c.buildKey("fox", 10); !strings.HasPrefix(key, keyPrefix) {
		t.Errorf("key %q missing prefix %q", key, keyPrefix)
	}
}
