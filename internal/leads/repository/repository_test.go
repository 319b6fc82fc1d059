package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/logger"
)

func newTestRepo(t *testing.T) (*Repository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(rdb, time.Minute, logger.New("test")), mr
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if _, hit, err := repo.GetSnapshot(ctx); err != nil || hit {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	leads := []domain.Lead{
		{UID: "u1", Phone: "+919876543210", CurrentStatus: domain.StatusNew},
		{UID: "u2", Phone: "+15551234567", CurrentStatus: domain.StatusWon, ForwardedTo: "Sales A"},
	}
	if err := repo.SetSnapshot(ctx, leads); err != nil {
		t.Fatalf("SetSnapshot: %v", err)
	}

	got, hit, err := repo.GetSnapshot(ctx)
	if err != nil || !hit {
		t.Fatalf("GetSnapshot: hit=%v err=%v", hit, err)
	}
	if len(got) != 2 || got[0].UID != "u1" || got[1].ForwardedTo != "Sales A" {
		t.Errorf("got %+v", got)
	}
}

func TestSnapshotTTL(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetSnapshot(ctx, []domain.Lead{{UID: "u1"}}); err != nil {
		t.Fatalf("SetSnapshot: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, hit, err := repo.GetSnapshot(ctx); err != nil || hit {
		t.Fatalf("expected miss after TTL: hit=%v err=%v", hit, err)
	}
}

func TestInvalidateSnapshot(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SetSnapshot(ctx, []domain.Lead{{UID: "u1"}}); err != nil {
		t.Fatalf("SetSnapshot: %v", err)
	}
	if err := repo.InvalidateSnapshot(ctx); err != nil {
		t.Fatalf("InvalidateSnapshot: %v", err)
	}
	if _, hit, _ := repo.GetSnapshot(ctx); hit {
		t.Fatal("expected miss after invalidation")
	}
}

func TestCorruptSnapshotBehavesLikeMiss(t *testing.T) {
	repo, mr := newTestRepo(t)

	if err := mr.Set("leads:snapshot", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, hit, err := repo.GetSnapshot(context.Background())
	if err != nil || hit {
		t.Fatalf("corrupt snapshot: hit=%v err=%v", hit, err)
	}
}

func TestSortPreference(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	dir, err := repo.GetSortPreference(ctx)
	if err != nil || dir != "" {
		t.Fatalf("unset preference: %q, %v", dir, err)
	}

	if err := repo.SetSortPreference(ctx, "newest"); err != nil {
		t.Fatalf("SetSortPreference: %v", err)
	}
	dir, err = repo.GetSortPreference(ctx)
	if err != nil || dir != "newest" {
		t.Fatalf("got %q, %v", dir, err)
	}
}
