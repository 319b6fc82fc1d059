// Package settings provides the vocabulary settings bounded context module.
package settings

import (
	"github.com/redis/go-redis/v9"

	apphttp "leadboard_backend/internal/http"
	"leadboard_backend/internal/settings/handler"
	"leadboard_backend/internal/settings/repository"
	"leadboard_backend/internal/settings/service"
	"leadboard_backend/internal/sheetstore"
	"leadboard_backend/platform/config"
	"leadboard_backend/platform/logger"
	"leadboard_backend/platform/validator"
)

// ModuleConfig narrows the configuration the settings module needs.
type ModuleConfig interface {
	config.SheetStoreConfig
	config.CacheConfig
}

// Module is the settings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the settings module.
func NewModule(rdb *redis.Client, val *validator.Validator, cfg ModuleConfig, log *logger.Logger) *Module {
	store := sheetstore.New(cfg, log)
	repo := repository.New(rdb, cfg.GetSnapshotTTL(), log)
	svc := service.New(store, repo, log)

	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "settings" }

// RegisterRoutes mounts the settings routes. Reads are public; updates sit
// behind the admin token.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/settings", m.handler.Get)
	ctx.Protected.PUT("/settings", m.handler.Update)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
