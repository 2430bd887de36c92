package ports

import (
	"context"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

type RegisterAdminInput struct {
	Name     string
	Email    string
	Password string
}

type AuthService interface {
	Login(ctx context.Context, sessionID, role, email, password string) (*domain.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	RegisterAdmin(ctx context.Context, input RegisterAdminInput) (string, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
}
