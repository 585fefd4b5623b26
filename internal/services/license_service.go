// Package services holds the business logic layer between the HTTP handlers
// and the domain packages.
package services

import (
	"context"
	"log/slog"

	"subpix/internal/infrastructure"
	"subpix/internal/license"
)

// LicenseService exposes license operations to the transport layer.
type LicenseService interface {
	GetStatus(ctx context.Context) license.StatusInfo
	Activate(ctx context.Context, key string) (license.Outcome, license.StatusInfo, error)
}

type licenseService struct {
	manager *license.Manager
	logger  *slog.Logger
}

// NewLicenseService creates the license service over the serialized manager.
func NewLicenseService(manager *license.Manager, logger *slog.Logger) LicenseService {
	return &licenseService{
		manager: manager,
		logger:  logger.With(slog.String("service", "license")),
	}
}

func (s *licenseService) GetStatus(ctx context.Context) license.StatusInfo {
	return s.manager.Status(ctx)
}

func (s *licenseService) Activate(ctx context.Context, key string) (license.Outcome, license.StatusInfo, error) {
	outcome, _, err := s.manager.Activate(ctx, key)
	infrastructure.LicenseActivations.WithLabelValues(string(outcome)).Inc()
	if err != nil {
		return outcome, license.StatusInfo{}, err
	}
	return outcome, s.manager.Status(ctx), nil
}
