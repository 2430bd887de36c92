package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

type CreateSubscriptionInput struct {
	Name         string
	Price        decimal.Decimal
	DurationDays int
}

type SubscriptionService interface {
	List(ctx context.Context, sessionID string) ([]domain.Subscription, error)
	Create(ctx context.Context, sessionID string, input CreateSubscriptionInput) (string, error)
	// Select puts the signed-in client on the named plan.
	Select(ctx context.Context, sessionID, plan string) (string, error)
}
