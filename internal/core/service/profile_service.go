package service

import (
	"context"
	"net/http"

	"github.com/fitflow/fitflow-web/internal/core/ports"
)

type ProfileService struct {
	backend ports.Backend
}

func NewProfileService(backend ports.Backend) *ProfileService {
	return &ProfileService{backend: backend}
}

type updateProfileRequest struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// UpdateClient updates the signed-in client's own details. Empty fields are
// omitted so the backend keeps their current values.
func (s *ProfileService) UpdateClient(ctx context.Context, sessionID string, input ports.UpdateProfileInput) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method: http.MethodPut,
		Path:   "/update",
		Body: updateProfileRequest{
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Email:     input.Email,
			Phone:     input.Phone,
		},
		Authenticated: true,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

type updateAdminRequest struct {
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	OldPassword string `json:"old_password,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}

func (s *ProfileService) UpdateAdmin(ctx context.Context, sessionID string, input ports.UpdateAdminInput) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method: http.MethodPut,
		Path:   "/admin/update",
		Body: updateAdminRequest{
			Name:        input.Name,
			Email:       input.Email,
			OldPassword: input.OldPassword,
			NewPassword: input.NewPassword,
		},
		Authenticated: true,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
