// Package feed provides the calendar feed domain module.
package feed

import (
	"crm_calendar_backend/internal/feed/handler"
	"crm_calendar_backend/internal/feed/service"
	apphttp "crm_calendar_backend/internal/http"
	"crm_calendar_backend/platform/logger"
)

// Module represents the calendar feed domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new feed module with all dependencies wired
func NewModule(upstream service.Upstream, log *logger.Logger) *Module {
	svc := service.New(upstream, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "feed"
}

// RegisterRoutes registers the module's routes under /calendar
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Root)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
