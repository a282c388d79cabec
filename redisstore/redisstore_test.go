package redisstore

import (
	"context"
	"testing"

	"github.com/go-redis/redis/v8"

	"github.com/averch/dcaplan"
)

// newTestStore connects to a local Redis, skipping when none is running.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379", DB: 15})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("no redis server: %v", err)
	}
	key := "dcaplan:test:" + t.Name()
	t.Cleanup(func() {
		client.Del(context.Background(), key)
		client.Close()
	})
	return New(client, key)
}

func TestLoadMissingKey(t *testing.T) {
	store := newTestStore(t)
	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() on a missing key failed: %v", err)
	}
	if len(snap.Positions) != 0 {
		t.Errorf("Load() on a missing key returned %d positions, want the empty default", len(snap.Positions))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	l := dcaplan.NewLedger()
	id, err := l.AddPosition("AAPL", "Apple", dcaplan.MustQuarter("Q1 2026"), dcaplan.Date{}, dcaplan.Q(10), dcaplan.M(100, "USD"), dcaplan.Money{})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(ctx, l.Snapshot()); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	l2, err := dcaplan.FromSnapshot(snap)
	if err != nil {
		t.Fatalf("FromSnapshot() failed: %v", err)
	}
	if l2.Position(id) == nil {
		t.Errorf("position %s lost in the redis round trip", id)
	}
}
