// Package handler exposes the lead routes over HTTP.
package handler

import (
	"net/http"

	"leadboard_backend/internal/leads/service"
	"leadboard_backend/internal/leads/transport"
	"leadboard_backend/platform/httpkit"
	"leadboard_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the lead routes. The paths predate this service
// and are kept verbatim for the existing frontend.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/leads", h.Dashboard)
	r.POST("/new-lead", h.Create)
	r.POST("/remove-lead", h.Remove)
}

// Dashboard returns the active leads with waiting annotations plus the
// day's aggregate metrics.
// GET /leads
func (h *Handler) Dashboard(c *gin.Context) {
	httpkit.OK(c, h.svc.Dashboard(c.Request.Context()))
}

// Create registers a new lead.
// POST /new-lead
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.Create(c.Request.Context(), req); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SuccessResponse{Success: true})
}

// Remove completes a lead. Unknown contact IDs still succeed.
// POST /remove-lead
func (h *Handler) Remove(c *gin.Context) {
	var req transport.RemoveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.Complete(c.Request.Context(), req.ContactID); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.SuccessResponse{Success: true})
}
