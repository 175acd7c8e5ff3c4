package api

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestDeduper(t *testing.T) (*RedisDeduper, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisDeduper(client, time.Minute), mr
}

func TestDeduperAddOnce(t *testing.T) {
	deduper, mr := newTestDeduper(t)
	ctx := context.Background()

	added, err := deduper.Add(ctx, "owner", "k1")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !added {
		t.Fatal("first add should succeed")
	}
	if ttl := mr.TTL("idem:owner:k1"); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected TTL: %v", ttl)
	}

	added, err = deduper.Add(ctx, "owner", "k1")
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if added {
		t.Fatal("second add must report a duplicate")
	}
}

func TestDeduperNamespacesBySubject(t *testing.T) {
	deduper, _ := newTestDeduper(t)
	ctx := context.Background()

	if added, _ := deduper.Add(ctx, "owner", "k1"); !added {
		t.Fatal("first add should succeed")
	}
	if added, _ := deduper.Add(ctx, "other", "k1"); !added {
		t.Fatal("same key under another subject should be independent")
	}
}

func TestDeduperRemoveAllowsRetry(t *testing.T) {
	deduper, _ := newTestDeduper(t)
	ctx := context.Background()

	if added, _ := deduper.Add(ctx, "owner", "k1"); !added {
		t.Fatal("first add should succeed")
	}
	if err := deduper.Remove(ctx, "owner", "k1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if added, _ := deduper.Add(ctx, "owner", "k1"); !added {
		t.Fatal("add after remove should succeed")
	}
}
