package repository

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Janushan11/scout-api/internal/domain"
)

// fakeRedis is an in-memory stand-in for the redis client
type fakeRedis struct {
	store   map[string]string
	failing bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string]string)}
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.failing {
		return redis.NewStringResult("", context.DeadlineExceeded)
	}
	val, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.failing {
		return redis.NewStatusResult("", context.DeadlineExceeded)
	}
	f.store[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	if f.failing {
		return redis.NewIntResult(0, context.DeadlineExceeded)
	}
	for _, k := range keys {
		delete(f.store, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func sampleUsers() []*domain.User {
	return []*domain.User{
		{ID: "u1", Name: "Alice", PhoneNumber: "0811111111", DutyMinutes: 90, RegisteredAt: time.Now().Add(-2 * time.Hour).UTC()},
		{ID: "u2", Name: "Bob", PhoneNumber: "0822222222", DutyMinutes: 30, RegisteredAt: time.Now().Add(-1 * time.Hour).UTC()},
	}
}

func TestLeaderboardCache_SetGetRoundTrip(t *testing.T) {
	cache := NewLeaderboardCache(newFakeRedis(), time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, sampleUsers()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Get() returned %d users, want 2", len(got))
	}
	if got[0].ID != "u1" || got[0].DutyMinutes != 90 {
		t.Errorf("Get() first user = %s/%d, want u1/90", got[0].ID, got[0].DutyMinutes)
	}
	if got[1].ID != "u2" {
		t.Errorf("Get() order not preserved, second user = %s", got[1].ID)
	}
}

func TestLeaderboardCache_MissReturnsNil(t *testing.T) {
	cache := NewLeaderboardCache(newFakeRedis(), time.Minute)

	got, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("Get() on empty cache error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() on empty cache = %v, want nil", got)
	}
}

func TestLeaderboardCache_Invalidate(t *testing.T) {
	cache := NewLeaderboardCache(newFakeRedis(), time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, sampleUsers()); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	got, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("Get() after invalidate error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() after invalidate = %v, want nil", got)
	}
}

func TestLeaderboardCache_NilClientIsNoop(t *testing.T) {
	cache := NewLeaderboardCache(nil, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, sampleUsers()); err != nil {
		t.Fatalf("Set() with nil client error = %v", err)
	}
	got, err := cache.Get(ctx)
	if err != nil || got != nil {
		t.Errorf("Get() with nil client = %v, %v, want nil, nil", got, err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() with nil client error = %v", err)
	}
}

func TestLeaderboardCache_PropagatesBackendError(t *testing.T) {
	backend := newFakeRedis()
	backend.failing = true
	cache := NewLeaderboardCache(backend, time.Minute)

	if _, err := cache.Get(context.Background()); err == nil {
		t.Error("Get() with failing backend expected error, got nil")
	}
}
