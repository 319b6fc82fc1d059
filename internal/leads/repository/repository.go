// Package repository caches the lead snapshot and dashboard preferences in
// redis. The spreadsheet stays authoritative; everything here is a cache-aside
// layer so list and stats requests do not hit the sheet script on every call.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"leadboard_backend/internal/leads/domain"
	"leadboard_backend/platform/logger"
)

const (
	keySnapshot = "leads:snapshot"
	keySortPref = "leads:pref:sort"
)

// Repository is the redis-backed lead cache.
type Repository struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New creates a lead repository on top of an established redis client.
func New(rdb *redis.Client, snapshotTTL time.Duration, log *logger.Logger) *Repository {
	return &Repository{rdb: rdb, ttl: snapshotTTL, log: log}
}

// GetSnapshot returns the cached lead snapshot. The second return value is
// false on a cache miss; a miss is not an error.
func (r *Repository) GetSnapshot(ctx context.Context) ([]domain.Lead, bool, error) {
	raw, err := r.rdb.Get(ctx, keySnapshot).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		r.log.CacheError("get_snapshot", err)
		return nil, false, err
	}

	var leads []domain.Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		// A corrupt snapshot behaves like a miss so the caller refetches.
		r.log.CacheError("decode_snapshot", err)
		return nil, false, nil
	}
	return leads, true, nil
}

// SetSnapshot stores the lead snapshot with the configured TTL.
func (r *Repository) SetSnapshot(ctx context.Context, leads []domain.Lead) error {
	raw, err := json.Marshal(leads)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, keySnapshot, raw, r.ttl).Err(); err != nil {
		r.log.CacheError("set_snapshot", err)
		return err
	}
	return nil
}

// InvalidateSnapshot drops the cached snapshot after a mutation so the next
// read refetches from the sheet.
func (r *Repository) InvalidateSnapshot(ctx context.Context) error {
	if err := r.rdb.Del(ctx, keySnapshot).Err(); err != nil {
		r.log.CacheError("invalidate_snapshot", err)
		return err
	}
	return nil
}

// GetSortPreference returns the persisted dashboard sort direction, or ""
// when none has been stored.
func (r *Repository) GetSortPreference(ctx context.Context) (string, error) {
	val, err := r.rdb.Get(ctx, keySortPref).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		r.log.CacheError("get_sort_preference", err)
		return "", err
	}
	return val, nil
}

// SetSortPreference persists the dashboard sort direction without expiry.
func (r *Repository) SetSortPreference(ctx context.Context, direction string) error {
	if err := r.rdb.Set(ctx, keySortPref, direction, 0).Err(); err != nil {
		r.log.CacheError("set_sort_preference", err)
		return err
	}
	return nil
}

// Ping reports cache liveness for the health endpoint.
func (r *Repository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
