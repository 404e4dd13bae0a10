package handler

import (
	"net/http"

	"collector_portal_backend/internal/market/service"
	"collector_portal_backend/internal/market/transport"
	"collector_portal_backend/platform/httpkit"
	"collector_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "itemName and category are required"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/market-analysis", h.AnalyzeMarket)
	rg.OPTIONS("/market-analysis", func(c *gin.Context) { c.Status(http.StatusOK) })
}

// AnalyzeMarket handles POST /market-analysis.
func (h *Handler) AnalyzeMarket(c *gin.Context) {
	var req transport.MarketAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	estimate, err := h.svc.EstimateMarketValue(c.Request.Context(), service.ItemAttributes{
		Name:         req.ItemName,
		Category:     req.Category,
		Manufacturer: req.Manufacturer,
		Pattern:      req.Pattern,
		Description:  req.Description,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, estimate)
}
