package service

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

type SubscriptionService struct {
	backend ports.Backend
}

func NewSubscriptionService(backend ports.Backend) *SubscriptionService {
	return &SubscriptionService{backend: backend}
}

// List returns the plan catalogue. The backend answers with a bare array.
func (s *SubscriptionService) List(ctx context.Context, sessionID string) ([]domain.Subscription, error) {
	plans := []domain.Subscription{}
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodGet,
		Path:          "/subscriptions",
		Authenticated: true,
	}, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

type createSubscriptionRequest struct {
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days,omitempty"`
}

func (s *SubscriptionService) Create(ctx context.Context, sessionID string, input ports.CreateSubscriptionInput) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodPost,
		Path:          "/subscriptions",
		Body:          createSubscriptionRequest{Name: input.Name, Price: input.Price, DurationDays: input.DurationDays},
		Authenticated: true,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type selectSubscriptionRequest struct {
	Subscription string `json:"subscription"`
}

func (s *SubscriptionService) Select(ctx context.Context, sessionID, plan string) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodPost,
		Path:          "/selectSubscription",
		Body:          selectSubscriptionRequest{Subscription: plan},
		Authenticated: true,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
