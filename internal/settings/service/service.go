// Package service manages the dashboard vocabulary settings. The lists live
// in the settings sheet; defaults apply when the sheet has never been saved.
package service

import (
	"context"

	"leadboard_backend/internal/settings/transport"
	"leadboard_backend/internal/sheetstore"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/textkit"
)

// Defaults used until settings are saved for the first time.
var (
	defaultLeadQualities      = []string{"UNCATEGORIZED", "HOT", "WARM", "COLD", "FAKE"}
	defaultBusinessIndustries = []string{
		"Retail",
		"Restaurant",
		"Real Estate",
		"Education",
		"Healthcare",
		"Travel",
		"Other",
	}
)

// SettingsStore is the remote settings sheet.
type SettingsStore interface {
	FetchSettings(ctx context.Context) (sheetstore.Settings, error)
	SaveSettings(ctx context.Context, settings sheetstore.Settings) error
}

// SettingsCache is the redis-backed settings cache.
type SettingsCache interface {
	Get(ctx context.Context) (sheetstore.Settings, bool, error)
	Set(ctx context.Context, settings sheetstore.Settings) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	store SettingsStore
	cache SettingsCache
	log   *logger.Logger
}

func New(store SettingsStore, cache SettingsCache, log *logger.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// Get returns the current vocabulary, serving from cache when fresh and
// falling back to defaults for lists the sheet has never stored.
func (s *Service) Get(ctx context.Context) (transport.SettingsResponse, error) {
	settings, hit, err := s.cache.Get(ctx)
	if err != nil || !hit {
		settings, err = s.store.FetchSettings(ctx)
		if err != nil {
			return transport.SettingsResponse{}, err
		}
		_ = s.cache.Set(ctx, settings)
	}

	return transport.SettingsResponse{
		LeadQualities:      withDefaults(settings.LeadQualities, defaultLeadQualities),
		BusinessIndustries: withDefaults(settings.BusinessIndustries, defaultBusinessIndustries),
	}, nil
}

// Update replaces the stored vocabulary lists, dropping duplicates while
// keeping first-seen casing and order.
func (s *Service) Update(ctx context.Context, req transport.UpdateSettingsRequest) (transport.SettingsResponse, error) {
	settings := sheetstore.Settings{
		LeadQualities:      textkit.Unique(req.LeadQualities),
		BusinessIndustries: textkit.Unique(req.BusinessIndustries),
	}

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return transport.SettingsResponse{}, err
	}
	_ = s.cache.Invalidate(ctx)

	return transport.SettingsResponse{
		LeadQualities:      settings.LeadQualities,
		BusinessIndustries: settings.BusinessIndustries,
	}, nil
}

func withDefaults(values, defaults []string) []string {
	if len(values) == 0 {
		return defaults
	}
	return values
}
