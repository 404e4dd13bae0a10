package wishlist

import (
	"collector_portal_backend/internal/ebay"
	apphttp "collector_portal_backend/internal/http"
	"collector_portal_backend/internal/wishlist/handler"
	"collector_portal_backend/internal/wishlist/repository"
	"collector_portal_backend/internal/wishlist/service"
	"collector_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	handler *handler.Handler
	monitor *service.Monitor
}

func NewModule(pool *pgxpool.Pool, client ebay.Searcher, log *logger.Logger) *Module {
	repo := repository.New(pool)
	monitor := service.NewMonitor(repo, client, log)
	h := handler.New(monitor)

	return &Module{handler: h, monitor: monitor}
}

func (m *Module) Name() string {
	return "wishlist"
}

// Monitor exposes the monitoring service for the scheduler worker.
func (m *Module) Monitor() *service.Monitor {
	return m.monitor
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Root)
}

var _ apphttp.Module = (*Module)(nil)
