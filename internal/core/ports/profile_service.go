package ports

import "context"

type UpdateProfileInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// UpdateAdminInput leaves a field unchanged on the backend when it is empty. The
// password only changes when both OldPassword and NewPassword are set.
type UpdateAdminInput struct {
	Email       string
	Name        string
	OldPassword string
	NewPassword string
}

type ProfileService interface {
	UpdateClient(ctx context.Context, sessionID string, input UpdateProfileInput) (string, error)
	UpdateAdmin(ctx context.Context, sessionID string, input UpdateAdminInput) (string, error)
}
