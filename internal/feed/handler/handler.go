package handler

import (
	"net/http"

	"crm_calendar_backend/internal/feed/ics"
	"crm_calendar_backend/internal/feed/service"
	"crm_calendar_backend/internal/feed/transport"
	"crm_calendar_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for calendar feeds
type Handler struct {
	svc *service.Service
}

// New creates a new feed handler
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the calendar feed routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/calendar/:token", h.Basic)
	rg.GET("/calendar/deep/:token", h.Deep)
	rg.GET("/calendar/measure/:token", h.Measure)
}

// Basic handles GET /calendar/:token
func (h *Handler) Basic(c *gin.Context) {
	var q transport.FeedQuery
	// All fields bind as strings; malformed values are the normalizer's
	// concern, not a request error.
	_ = c.ShouldBindQuery(&q)

	feed, err := h.svc.Basic(c.Request.Context(), c.Param("token"), q)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	httpkit.Calendar(c, ics.Render(feed))
}

// Deep handles GET /calendar/deep/:token
func (h *Handler) Deep(c *gin.Context) {
	var q transport.FeedQuery
	_ = c.ShouldBindQuery(&q)

	feed, err := h.svc.Deep(c.Request.Context(), c.Param("token"), q)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	httpkit.Calendar(c, ics.Render(feed))
}

// Measure handles GET /calendar/measure/:token
func (h *Handler) Measure(c *gin.Context) {
	var q transport.MeasureFeedQuery
	_ = c.ShouldBindQuery(&q)

	feed, err := h.svc.Measure(c.Request.Context(), c.Param("token"), q)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	httpkit.Calendar(c, ics.Render(feed))
}
