// Package repository caches the remote vocabulary settings in redis so the
// dashboard does not round-trip to the sheet script for every dropdown.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"leadboard_backend/internal/sheetstore"
	"leadboard_backend/platform/logger"
)

const keySettings = "settings:vocab"

// Repository is the redis-backed settings cache.
type Repository struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New creates a settings repository on top of an established redis client.
func New(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *Repository {
	return &Repository{rdb: rdb, ttl: ttl, log: log}
}

// Get returns the cached settings; the bool is false on a miss.
func (r *Repository) Get(ctx context.Context) (sheetstore.Settings, bool, error) {
	raw, err := r.rdb.Get(ctx, keySettings).Bytes()
	if errors.Is(err, redis.Nil) {
		return sheetstore.Settings{}, false, nil
	}
	if err != nil {
		r.log.CacheError("get_settings", err)
		return sheetstore.Settings{}, false, err
	}

	var settings sheetstore.Settings
	if err := json.Unmarshal(raw, &settings); err != nil {
		r.log.CacheError("decode_settings", err)
		return sheetstore.Settings{}, false, nil
	}
	return settings, true, nil
}

// Set stores the settings with the configured TTL.
func (r *Repository) Set(ctx context.Context, settings sheetstore.Settings) error {
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, keySettings, raw, r.ttl).Err(); err != nil {
		r.log.CacheError("set_settings", err)
		return err
	}
	return nil
}

// Invalidate drops the cached settings after an update.
func (r *Repository) Invalidate(ctx context.Context) error {
	if err := r.rdb.Del(ctx, keySettings).Err(); err != nil {
		r.log.CacheError("invalidate_settings", err)
		return err
	}
	return nil
}
