package market

import (
	"collector_portal_backend/internal/ebay"
	apphttp "collector_portal_backend/internal/http"
	"collector_portal_backend/internal/market/handler"
	"collector_portal_backend/internal/market/service"
	"collector_portal_backend/platform/logger"
	"collector_portal_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

func NewModule(client ebay.Searcher, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(client, log)
	h := handler.New(svc, val)

	return &Module{handler: h, svc: svc}
}

func (m *Module) Name() string {
	return "market"
}

// Service exposes the estimation pipeline for other modules.
func (m *Module) Service() *service.Service {
	return m.svc
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Root)
}

var _ apphttp.Module = (*Module)(nil)
