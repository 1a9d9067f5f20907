package queue

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/apostaesportiva/bolao/internal/core/domain"
)

type recordingStore struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (s *recordingStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return s.err
}

type recordingCache struct {
	mu          sync.Mutex
	invalidated []string
}

func (c *recordingCache) Get(context.Context, string) (*domain.CachedUser, error) { return nil, nil }
func (c *recordingCache) Set(context.Context, string, *domain.CachedUser) error  { return nil }
func (c *recordingCache) Delete(_ context.Context, uid string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, uid)
	return nil
}

func TestDispatcher_ProcessesJobsInOrderPerUser(t *testing.T) {
	store := &recordingStore{}
	cache := &recordingCache{}
	d := NewDispatcher(3, store, cache, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.CleanupJob{UID: "u1", ObjectKey: "uploads/u1/1.png"})
	d.Enqueue(domain.CleanupJob{UID: "u1", ObjectKey: "uploads/u1/2.png"})
	d.Enqueue(domain.CleanupJob{UID: "u1", ObjectKey: "uploads/u1/3.png"})
	d.Stop()

	want := []string{"uploads/u1/1.png", "uploads/u1/2.png", "uploads/u1/3.png"}
	if len(store.deleted) != len(want) {
		t.Fatalf("deleted %v, want %v", store.deleted, want)
	}
	for i := range want {
		if store.deleted[i] != want[i] {
			t.Fatalf("deleted %v, want %v", store.deleted, want)
		}
	}
	if len(cache.invalidated) != 3 {
		t.Fatalf("expected cache invalidation per job, got %v", cache.invalidated)
	}
}

func TestDispatcher_EmptyKeyOnlyInvalidatesCache(t *testing.T) {
	store := &recordingStore{}
	cache := &recordingCache{}
	d := NewDispatcher(1, store, cache, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.CleanupJob{UID: "u2"})
	d.Stop()

	if len(store.deleted) != 0 {
		t.Fatalf("no object must be deleted, got %v", store.deleted)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u2" {
		t.Fatalf("expected u2 invalidated, got %v", cache.invalidated)
	}
}

func TestDispatcher_DeleteFailureStillInvalidates(t *testing.T) {
	store := &recordingStore{err: errors.New("s3 down")}
	cache := &recordingCache{}
	d := NewDispatcher(1, store, cache, zerolog.Nop())
	d.Start(context.Background())

	d.Enqueue(domain.CleanupJob{UID: "u3", ObjectKey: "uploads/u3/1.png"})
	d.Stop()

	if len(cache.invalidated) != 1 {
		t.Fatalf("cache must be invalidated even when delete fails")
	}
}

func TestDispatcher_EnqueueAfterStopIsDropped(t *testing.T) {
	store := &recordingStore{}
	d := NewDispatcher(1, store, nil, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Enqueue(domain.CleanupJob{UID: "u4", ObjectKey: "uploads/u4/1.png"})
	if len(store.deleted) != 0 {
		t.Fatalf("job after stop must be dropped")
	}
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingStore{}, nil, zerolog.Nop())
	for _, uid := range []string{"a", "u1", "some-long-uid-value"} {
		first := d.shardIndex(uid)
		if first < 0 || first >= 8 {
			t.Fatalf("shard %d out of range", first)
		}
		for i := 0; i < 5; i++ {
			if d.shardIndex(uid) != first {
				t.Fatalf("shard for %q changed", uid)
			}
		}
	}
}

type slowStore struct {
	recordingStore
	delay time.Duration
}

func (s *slowStore) Delete(ctx context.Context, key string) error {
	time.Sleep(s.delay)
	return s.recordingStore.Delete(ctx, key)
}

func TestDispatcher_StopDrainsAfterStartContextCancelled(t *testing.T) {
	store := &slowStore{delay: 20 * time.Millisecond}
	cache := &recordingCache{}
	d := NewDispatcher(1, store, cache, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 5; i++ {
		d.Enqueue(domain.CleanupJob{UID: "u5", ObjectKey: "uploads/u5/" + strconv.Itoa(i) + ".png"})
	}
	cancel()
	d.Enqueue(domain.CleanupJob{UID: "u5", ObjectKey: "uploads/u5/late.png"})
	d.Stop()

	if len(store.deleted) != 6 {
		t.Fatalf("expected 6 jobs processed, got %d: %v", len(store.deleted), store.deleted)
	}
	if store.deleted[5] != "uploads/u5/late.png" {
		t.Fatalf("late job must run last, got %v", store.deleted)
	}
	if len(cache.invalidated) != 6 {
		t.Fatalf("expected 6 invalidations, got %d", len(cache.invalidated))
	}
}
