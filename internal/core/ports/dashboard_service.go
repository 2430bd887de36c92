package ports

import (
	"context"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

type DashboardService interface {
	Admin(ctx context.Context, sessionID string) (*domain.AdminStats, error)
	Client(ctx context.Context, sessionID string) (*domain.ClientDashboard, error)
}
