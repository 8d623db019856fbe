// Package catalog provides the catalog bounded context module.
package catalog

import (
	"storefront_backend/internal/catalog/client"
	"storefront_backend/internal/catalog/handler"
	"storefront_backend/internal/catalog/service"
	apphttp "storefront_backend/internal/http"
	"storefront_backend/platform/config"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the catalog module backed by the remote catalog API.
func NewModule(cfg config.CatalogConfig, val *validator.Validator, log *logger.Logger) *Module {
	return NewModuleWithRemote(client.New(cfg, val, log), val, log)
}

// NewModuleWithRemote creates the catalog module over an arbitrary catalog transport.
func NewModuleWithRemote(remote service.Remote, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(remote, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/catalog")
	group.GET("/categories", m.handler.ListCategories)
	group.GET("/products", m.handler.ListProducts)
	group.GET("/products/:id", m.handler.GetProduct)
	group.GET("/home", m.handler.GetHome)
	group.GET("/queries", m.handler.GetQueryStatus)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
