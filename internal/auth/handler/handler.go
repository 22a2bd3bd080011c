package handler

import (
	"errors"
	"net/http"

	"crm_calendar_backend/internal/auth/service"
	"crm_calendar_backend/internal/auth/transport"
	"crm_calendar_backend/internal/crm"
	"crm_calendar_backend/platform/httpkit"
	"crm_calendar_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const msgValidationFailed = "validation failed"

// Handler handles HTTP requests for authentication
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login handles GET /login
func (h *Handler) Login(c *gin.Context) {
	req := transport.LoginRequest{
		Email:    c.Query("email"),
		Password: c.Query("password"),
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	link, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		var statusErr *crm.StatusError
		if errors.As(err, &statusErr) {
			// Activation failed upstream: forward the verbatim body.
			contentType := statusErr.ContentType
			if contentType == "" {
				contentType = "application/json"
			}
			c.Data(statusErr.StatusCode, contentType, statusErr.Body)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	c.String(http.StatusOK, link)
}
