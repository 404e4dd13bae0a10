package handler

import (
	"net/http"

	"collector_portal_backend/internal/wishlist/service"
	"collector_portal_backend/internal/wishlist/transport"
	"collector_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	monitor *service.Monitor
}

func New(monitor *service.Monitor) *Handler {
	return &Handler{monitor: monitor}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/ebay-monitor", h.RunMonitor)
	rg.OPTIONS("/ebay-monitor", func(c *gin.Context) { c.Status(http.StatusOK) })
}

// RunMonitor handles POST /ebay-monitor. A body naming a wishlistItemId runs
// single-item mode; otherwise every active item is processed. A malformed
// JSON body is tolerated and treated as an empty object.
func (h *Handler) RunMonitor(c *gin.Context) {
	var req transport.MonitorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = transport.MonitorRequest{}
	}

	report, err := h.monitor.RunBatch(c.Request.Context(), req.WishlistItemID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, report)
}
