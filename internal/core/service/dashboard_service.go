package service

import (
	"context"
	"net/http"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

type DashboardService struct {
	backend ports.Backend
}

func NewDashboardService(backend ports.Backend) *DashboardService {
	return &DashboardService{backend: backend}
}

func (s *DashboardService) Admin(ctx context.Context, sessionID string) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodGet,
		Path:          "/dashboard",
		Authenticated: true,
	}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *DashboardService) Client(ctx context.Context, sessionID string) (*domain.ClientDashboard, error) {
	var dash domain.ClientDashboard
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodGet,
		Path:          "/dashboard/client",
		Authenticated: true,
	}, &dash); err != nil {
		return nil, err
	}
	return &dash, nil
}
