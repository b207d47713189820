// Package leads provides the lead-tracking bounded context module.
// This file defines the module that encapsulates all leads setup and route
// registration.
package leads

import (
	"leadboard_backend/internal/businesstime"
	apphttp "leadboard_backend/internal/http"
	"leadboard_backend/internal/ledger"
	"leadboard_backend/internal/leads/handler"
	"leadboard_backend/internal/leads/service"
	"leadboard_backend/platform/clock"
	"leadboard_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the leads module with all its
// dependencies.
func NewModule(store *ledger.FileStore, calc *businesstime.Calculator, clk clock.Clock, val *validator.Validator) *Module {
	svc := service.New(store, calc, clk)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the lead service for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Root)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
