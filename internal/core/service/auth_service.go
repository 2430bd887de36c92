package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/fitflow/fitflow-web/internal/api/metrics"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

// ErrUnknownRole is returned for a login role other than admin or client.
var ErrUnknownRole = errors.New("unknown role")

// errNoToken means the backend accepted a login without issuing a token.
var errNoToken = errors.New("login response carried no token")

// AuthService implements login, logout, admin registration and password reset requests.
type AuthService struct {
	backend ports.Backend
	store   ports.SessionStore
	log     zerolog.Logger
}

func NewAuthService(backend ports.Backend, store ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{backend: backend, store: store, log: log}
}

var loginPaths = map[string]string{
	domain.RoleAdmin:  "/admin/login",
	domain.RoleClient: "/client/login",
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse covers both login endpoints: admins get "token", clients "access_token".
type loginResponse struct {
	Message     string `json:"message"`
	Token       string `json:"token"`
	AccessToken string `json:"access_token"`
}

func (r loginResponse) credential() domain.Credential {
	if r.Token != "" {
		return domain.Credential(r.Token)
	}
	return domain.Credential(r.AccessToken)
}

// Login authenticates against the role's endpoint and stores the issued credential
// for sessionID, replacing any previous one.
func (s *AuthService) Login(ctx context.Context, sessionID, role, email, password string) (*domain.LoginResult, error) {
	path, ok := loginPaths[role]
	if !ok {
		return nil, ErrUnknownRole
	}

	var resp loginResponse
	err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method: http.MethodPost,
		Path:   path,
		Body:   loginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		return nil, err
	}

	cred := resp.credential()
	if cred.Empty() {
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		return nil, &domain.APIError{Kind: domain.KindRejected, Status: http.StatusBadGateway, Err: errNoToken}
	}

	if err := s.store.Set(ctx, sessionID, cred); err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues(role, "success").Inc()
	s.log.Info().Str("role", role).Str("principal", cred.Principal()).Msg("login succeeded")
	return &domain.LoginResult{Role: role, Message: resp.Message}, nil
}

// Logout tells the backend to revoke the token, then clears the session whatever
// the backend answered.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		if errors.Is(err, domain.ErrNoCredential) {
			return nil
		}
		return err
	}

	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodPost,
		Path:          "/logout",
		Authenticated: true,
	}, nil); err != nil {
		s.log.Warn().Err(err).Msg("backend logout failed, clearing session anyway")
	}

	if err := s.store.Clear(ctx, sessionID); err != nil {
		return err
	}
	metrics.SessionsClearedTotal.WithLabelValues("logout").Inc()
	return nil
}

type registerAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterAdmin creates an administrator account. The backend reports an existing
// admin with status 200 and an "error" field; that is surfaced as a rejection.
func (s *AuthService) RegisterAdmin(ctx context.Context, input ports.RegisterAdminInput) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, "", ports.BackendRequest{
		Method: http.MethodPost,
		Path:   "/add/admin",
		Body:   registerAdminRequest{Name: input.Name, Email: input.Email, Password: input.Password},
	}, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" {
		return "", &domain.APIError{Kind: domain.KindRejected, Status: http.StatusConflict, Message: resp.Error}
	}
	return resp.Message, nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, "", ports.BackendRequest{
		Method: http.MethodPost,
		Path:   "/forgot-password",
		Body:   forgotPasswordRequest{Email: email},
	}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
