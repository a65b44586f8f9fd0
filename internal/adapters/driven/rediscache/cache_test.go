package rediscache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tidemark-labs/lingo-core/internal/core/domain"
)

// setupTestCache creates a miniredis-backed cache
func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewCache(client, time.Hour)

	return cache, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestCacheSetGet(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()

	if err := cache.Set(ctx, "ko", "Hello world", "안녕 세상"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	got, err := cache.Get(ctx, "ko", "Hello world")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "안녕 세상" {
		t.Errorf("expected cached text, got %q", got)
	}
}

func TestCacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	_, err := cache.Get(context.Background(), "ko", "never stored")
	if !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheScopedByLanguage(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()
	if err := cache.Set(ctx, "ko", "Hello", "안녕"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if _, err := cache.Get(ctx, "ja", "Hello"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("expected miss for other language, got %v", err)
	}
}

func TestCacheTTL(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()
	if err := cache.Set(ctx, "ko", "expiring", "value"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := cache.Get(ctx, "ko", "expiring"); !errors.Is(err, domain.ErrCacheMiss) {
		t.Errorf("expected expiry after TTL, got %v", err)
	}
}

func TestKey(t *testing.T) {
	if Key("ko", "text") == Key("ja", "text") {
		t.Error("keys must differ per language")
	}
	if Key("ko", "text a") == Key("ko", "text b") {
		t.Error("keys must differ per source")
	}
	if Key("ko", "text") != Key("ko", "text") {
		t.Error("keys must be deterministic")
	}
	if !strings.HasPrefix(Key("ko", "text"), keyPrefix) {
		t.Error("keys must carry the namespace prefix")
	}
}
