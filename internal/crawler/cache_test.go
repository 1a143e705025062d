package crawler

import (
	"context"
	"testing"
	"time"
)

func TestCacheKeyDeterministic(t *testing.T) {
	a := CacheKey("latest_videos", "@chan", "5")
	b := CacheKey("latest_videos", "@chan", "5")
	c := CacheKey("latest_videos", "@chan", "6")

	if a != b {
		t.Error("same parts must produce the same key")
	}
	if a == c {
		t.Error("different parts must produce different keys")
	}
	if len(a) != 27 { // "yt:" + 24 hex chars
		t.Errorf("key length = %d: %q", len(a), a)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	cache := NewCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	type payload struct {
		Value string `json:"value"`
	}

	key := CacheKey("test", "a")
	if _, ok := CacheLoad[payload](ctx, cache, key); ok {
		t.Fatal("expected miss on fresh cache")
	}

	CacheStore(ctx, cache, key, payload{Value: "cached"})

	got, ok := CacheLoad[payload](ctx, cache, key)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if got.Value != "cached" {
		t.Errorf("got %+v", got)
	}

	hits, misses := cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses", hits, misses)
	}
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache("", 10*time.Millisecond, 100, time.Minute)
	ctx := context.Background()

	type payload struct {
		Value string `json:"value"`
	}

	key := CacheKey("test", "expiring")
	CacheStore(ctx, cache, key, payload{Value: "short-lived"})

	time.Sleep(25 * time.Millisecond)

	if _, ok := CacheLoad[payload](ctx, cache, key); ok {
		t.Error("expected miss after TTL expiry")
	}
}

func TestCacheNilSafe(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	type payload struct{ V int }

	if _, ok := CacheLoad[payload](ctx, cache, "k"); ok {
		t.Error("nil cache must miss")
	}
	CacheStore(ctx, cache, "k", payload{V: 1}) // must not panic

	hits, misses := cache.Stats()
	if hits != 0 || misses != 0 {
		t.Errorf("nil cache stats = %d, %d", hits, misses)
	}
}
