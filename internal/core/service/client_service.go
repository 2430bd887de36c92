package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

// ClientService manages gym members through the backend.
type ClientService struct {
	backend ports.Backend
	log     zerolog.Logger
}

func NewClientService(backend ports.Backend, log zerolog.Logger) *ClientService {
	return &ClientService{backend: backend, log: log}
}

type clientListResponse struct {
	Clients []domain.Client `json:"clients"`
}

func (s *ClientService) List(ctx context.Context, sessionID string, filter ports.ClientFilter) ([]domain.Client, error) {
	query := map[string]string{}
	if filter.Search != "" {
		query["search"] = filter.Search
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	var resp clientListResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodGet,
		Path:          "/clients",
		Query:         query,
		Authenticated: true,
	}, &resp); err != nil {
		return nil, err
	}
	if resp.Clients == nil {
		resp.Clients = []domain.Client{}
	}
	return resp.Clients, nil
}

type createClientRequest struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Status       string `json:"status,omitempty"`
	Subscription string `json:"subscription,omitempty"`
}

// Create registers a new client; the backend generates and emails the password.
func (s *ClientService) Create(ctx context.Context, sessionID string, input ports.CreateClientInput) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method: http.MethodPost,
		Path:   "/addClient",
		Body: createClientRequest{
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			Phone:        input.Phone,
			Status:       input.Status,
			Subscription: input.Subscription,
		},
		Authenticated: true,
	}, &resp); err != nil {
		return "", err
	}
	s.log.Info().Str("email", input.Email).Msg("client created")
	return resp.Message, nil
}

type updateClientRequest struct {
	FirstName      string `json:"first_name,omitempty"`
	LastName       string `json:"last_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	SubscriptionID *int   `json:"subscription_id,omitempty"`
}

type updateClientResponse struct {
	Message string        `json:"message"`
	Client  domain.Client `json:"client"`
}

// Update patches a client and returns the record as the backend now holds it.
func (s *ClientService) Update(ctx context.Context, sessionID string, id int, input ports.UpdateClientInput) (*domain.Client, error) {
	var resp updateClientResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method: http.MethodPatch,
		Path:   clientPath(id),
		Body: updateClientRequest{
			FirstName:      input.FirstName,
			LastName:       input.LastName,
			Email:          input.Email,
			Phone:          input.Phone,
			SubscriptionID: input.SubscriptionID,
		},
		Authenticated: true,
	}, &resp); err != nil {
		return nil, err
	}
	return &resp.Client, nil
}

func (s *ClientService) Delete(ctx context.Context, sessionID string, id int) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodDelete,
		Path:          clientPath(id),
		Authenticated: true,
	}, &resp); err != nil {
		return "", err
	}
	s.log.Info().Int("client_id", id).Msg("client deleted")
	return resp.Message, nil
}

func clientPath(id int) string {
	return "/clients/" + strconv.Itoa(id)
}
