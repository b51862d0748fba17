package cache

import (
	"testing"
	"time"
)

func TestCacheHitAndMiss(t *testing.T) {
	c := New(10 * time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("empty cache should miss")
	}

	c.Set("k", 42)
	v, ok := c.Get("k")
	if !ok {
		t.Fatal("expected a hit")
	}
	if v.(int) != 42 {
		t.Errorf("value = %v, want 42", v)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(10 * time.Minute)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	c.Set("k", "v")

	base = base.Add(9 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry should still be live after 9 minutes")
	}

	base = base.Add(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired after 11 minutes")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := New(10 * time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Error("invalidated entry should miss")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("other entries should survive")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("cleared cache should miss")
	}
}
