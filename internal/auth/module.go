// Package auth provides the CRM login domain module.
package auth

import (
	"crm_calendar_backend/internal/auth/handler"
	"crm_calendar_backend/internal/auth/service"
	apphttp "crm_calendar_backend/internal/http"
	"crm_calendar_backend/platform/config"
	"crm_calendar_backend/platform/logger"
	"crm_calendar_backend/platform/validator"
)

// Module represents the auth domain module
type Module struct {
	handler *handler.Handler
	Service *service.Service
}

// NewModule creates a new auth module with all dependencies wired
func NewModule(activator service.Activator, cfg config.FeedConfig, log *logger.Logger, val *validator.Validator) *Module {
	svc := service.New(activator, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		Service: svc,
	}
}

// Name returns the module name for logging
func (m *Module) Name() string {
	return "auth"
}

// RegisterRoutes registers the login route with the stricter auth rate limit
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Root.GET("/login", ctx.AuthRateLimiter.RateLimit(), m.handler.Login)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
