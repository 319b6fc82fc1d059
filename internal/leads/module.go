// Package leads provides the lead dashboard bounded context module.
// This file defines the module that encapsulates all leads setup and route
// registration.
package leads

import (
	"context"

	"github.com/redis/go-redis/v9"

	apphttp "leadboard_backend/internal/http"
	"leadboard_backend/internal/leads/agent"
	"leadboard_backend/internal/leads/handler"
	"leadboard_backend/internal/leads/repository"
	"leadboard_backend/internal/leads/service"
	"leadboard_backend/internal/sheetstore"
	"leadboard_backend/platform/ai/gemini"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/events"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
	repo    *repository.Repository
}

// ModuleConfig narrows the configuration the leads module needs.
type ModuleConfig interface {
	config.SheetStoreConfig
	config.CacheConfig
	config.PhoneConfig
	config.AIConfig
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(rdb *redis.Client, bus events.Bus, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) *Module {
	store := sheetstore.New(cfg, log)
	repo := repository.New(rdb, cfg.GetSnapshotTTL(), log)
	svc := service.New(store, repo, bus, newAnalyzer(cfg, log), cfg, log)

	return &Module{
		handler: handler.New(svc, val),
		svc:     svc,
		repo:    repo,
	}
}

// newAnalyzer builds the Gemini lead analyzer. The feature is optional: no
// API key, or a client that fails to initialize, leaves the analyzer nil and
// the analyze endpoint answers 503.
func newAnalyzer(cfg config.AIConfig, log *logger.Logger) service.LeadAnalyzer {
	key := cfg.GetGeminiAPIKey()
	if key == "" {
		return nil
	}
	analyzer, err := agent.NewLeadAnalyzer(context.Background(), gemini.Config{
		APIKey: key,
		Model:  cfg.GetGeminiModel(),
	}, log)
	if err != nil {
		log.AnalysisError("", err)
		return nil
	}
	return analyzer
}

// Name returns the module identifier for logging.
func (m *Module) Name() string { return "leads" }

// Service exposes the lead service for the worker binary.
func (m *Module) Service() *service.Service { return m.svc }

// Health exposes the cache-backed repository for readiness checks.
func (m *Module) Health() *repository.Repository { return m.repo }

// RegisterRoutes mounts the leads routes. Reads are public; mutations sit
// behind the admin token.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublic(ctx.V1.Group("/leads"))
	m.handler.RegisterProtected(ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
