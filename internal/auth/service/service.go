package service

import (
	"context"
	"fmt"
	"net/url"

	"crm_calendar_backend/internal/crm"
	"crm_calendar_backend/platform/apperr"
	"crm_calendar_backend/platform/config"
	"crm_calendar_backend/platform/logger"
)

// Activator provides the slice of the CRM API needed for login.
type Activator interface {
	Activate(ctx context.Context, email, password string) (crm.ActivationResult, error)
}

// Service exchanges CRM credentials for a calendar share link.
type Service struct {
	crm Activator
	cfg config.FeedConfig
	log *logger.Logger
}

// New creates a new auth service
func New(activator Activator, cfg config.FeedConfig, log *logger.Logger) *Service {
	return &Service{crm: activator, cfg: cfg, log: log}
}

// Login activates a CRM license and returns a ready-to-share basic calendar
// URL with the default day-window flags. Credentials are validated before
// any network call; activation failures are returned untouched so the HTTP
// layer can pass the upstream body through.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" {
		return "", apperr.Validation("email is required")
	}
	if password == "" {
		return "", apperr.Validation("password is required")
	}

	result, err := s.crm.Activate(ctx, email, password)
	if err != nil {
		s.log.AuthEvent("activate", email, false, err.Error())
		return "", err
	}
	s.log.AuthEvent("activate", email, true, "")

	link := fmt.Sprintf("%s/calendar/%s?salesperson=%s&df=30&db=7",
		s.cfg.GetAppBaseURL(),
		url.PathEscape(result.PartitionKey),
		url.QueryEscape(result.Email),
	)
	return link, nil
}
