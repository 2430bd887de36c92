package ports

import (
	"context"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

// ClientFilter narrows the client list. Empty fields are not sent.
type ClientFilter struct {
	Search string
	Status string
}

// CreateClientInput carries the add-client form after local validation.
type CreateClientInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Status       string
	Subscription string // plan name, empty for none
}

// UpdateClientInput carries the inline edit row of the client list.
type UpdateClientInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	SubscriptionID *int
}

type ClientService interface {
	List(ctx context.Context, sessionID string, filter ClientFilter) ([]domain.Client, error)
	Create(ctx context.Context, sessionID string, input CreateClientInput) (string, error)
	Update(ctx context.Context, sessionID string, id int, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, sessionID string, id int) (string, error)
}
