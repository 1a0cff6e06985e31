package webfetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetAndGet(t *testing.T) {
	cache := NewCache(time.Minute)
	snap := &Snapshot{URL: "https://example.com", Markdown: "content"}
	cache.Set("https://example.com", snap)

	got, ok := cache.Get("https://example.com")
	assert.True(t, ok)
	assert.Equal(t, snap, got)
}

func TestCache_Miss(t *testing.T) {
	cache := NewCache(time.Minute)
	got, ok := cache.Get("https://example.com/nonexistent")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_TTLExpiry(t *testing.T) {
	cache := NewCache(30 * time.Millisecond)
	cache.Set("https://example.com", &Snapshot{URL: "https://example.com"})

	_, ok := cache.Get("https://example.com")
	assert.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = cache.Get("https://example.com")
	assert.False(t, ok)
}
