package handler

import (
	"context"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fitflow/fitflow-web/internal/api/middleware"
	"github.com/fitflow/fitflow-web/internal/api/view"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

// newTestEcho returns an echo instance with the real renderer and validator.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func newFormContext(e *echo.Echo, method, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	middleware.SetSessionID(c, "sid-1")
	return c, rec
}

// --- stubAuthService ---

type stubAuthService struct {
	loginErr  error
	logins    int
	lastRole  string
	lastEmail string
}

func (s *stubAuthService) Login(_ context.Context, _, role, email, _ string) (*domain.LoginResult, error) {
	s.logins++
	s.lastRole, s.lastEmail = role, email
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &domain.LoginResult{Role: role}, nil
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) RegisterAdmin(context.Context, ports.RegisterAdminInput) (string, error) {
	return "Admin created", nil
}

func (s *stubAuthService) ForgotPassword(context.Context, string) (string, error) {
	return "Password reset link sent", nil
}

// --- stubClientService ---

type stubClientService struct {
	rows      []domain.Client
	listErr   error
	createErr error
	creates   int
	lists     int
	updates   []ports.UpdateClientInput
	// listHook runs inside List before it returns, with the call's context.
	listHook func(ctx context.Context)
}

func (s *stubClientService) List(ctx context.Context, _ string, _ ports.ClientFilter) ([]domain.Client, error) {
	s.lists++
	if s.listHook != nil {
		s.listHook(ctx)
	}
	return s.rows, s.listErr
}

func (s *stubClientService) Create(context.Context, string, ports.CreateClientInput) (string, error) {
	s.creates++
	if s.createErr != nil {
		return "", s.createErr
	}
	return "Client added successfully", nil
}

func (s *stubClientService) Update(_ context.Context, _ string, id int, in ports.UpdateClientInput) (*domain.Client, error) {
	s.updates = append(s.updates, in)
	return &domain.Client{ID: id, FirstName: in.FirstName, LastName: in.LastName}, nil
}

func (s *stubClientService) Delete(context.Context, string, int) (string, error) {
	return "Client deleted", nil
}

// --- stubSubscriptionService ---

type stubSubscriptionService struct {
	plans   []domain.Subscription
	err     error
	lists   int
	creates int
}

func (s *stubSubscriptionService) List(context.Context, string) ([]domain.Subscription, error) {
	s.lists++
	return s.plans, s.err
}

func (s *stubSubscriptionService) Create(context.Context, string, ports.CreateSubscriptionInput) (string, error) {
	s.creates++
	return "Subscription created", nil
}

func (s *stubSubscriptionService) Select(context.Context, string, string) (string, error) {
	return "Subscription selected", nil
}

// --- stubPaymentService ---

type stubPaymentService struct {
	cashErr  error
	cashReqs []ports.CashPaymentInput
}

func (s *stubPaymentService) MarkCash(_ context.Context, _ string, in ports.CashPaymentInput) (*domain.CashPaymentReceipt, error) {
	s.cashReqs = append(s.cashReqs, in)
	if s.cashErr != nil {
		return nil, s.cashErr
	}
	return &domain.CashPaymentReceipt{Message: "Payment recorded", Client: "Jane Doe", Subscription: in.Subscription, PaymentStatus: domain.PaymentSuccess}, nil
}

func (s *stubPaymentService) StartMobile(context.Context, string, ports.MobilePaymentInput) (string, error) {
	return "", nil
}

func (s *stubPaymentService) ListForClient(context.Context, string) ([]domain.Payment, error) {
	return nil, nil
}

// --- stubExpenseService ---

type stubExpenseService struct {
	adds    []ports.AddExpenseInput
	filters []ports.ExpenseFilter
}

func (s *stubExpenseService) Add(_ context.Context, _ string, in ports.AddExpenseInput) (string, error) {
	s.adds = append(s.adds, in)
	return "Expense added successfully!", nil
}

func (s *stubExpenseService) List(_ context.Context, _ string, f ports.ExpenseFilter) (*domain.ExpenseReport, error) {
	s.filters = append(s.filters, f)
	return &domain.ExpenseReport{Year: 2024}, nil
}

// --- stubDashboardService ---

type stubDashboardService struct {
	adminStats *domain.AdminStats
	adminErr   error
	client     *domain.ClientDashboard
}

func (s *stubDashboardService) Admin(context.Context, string) (*domain.AdminStats, error) {
	return s.adminStats, s.adminErr
}

func (s *stubDashboardService) Client(context.Context, string) (*domain.ClientDashboard, error) {
	if s.client == nil {
		return &domain.ClientDashboard{}, nil
	}
	return s.client, nil
}

// --- stubProfileService ---

type stubProfileService struct {
	adminUpdates []ports.UpdateAdminInput
}

func (s *stubProfileService) UpdateClient(context.Context, string, ports.UpdateProfileInput) (string, error) {
	return "", nil
}

func (s *stubProfileService) UpdateAdmin(_ context.Context, _ string, in ports.UpdateAdminInput) (string, error) {
	s.adminUpdates = append(s.adminUpdates, in)
	return "Admin updated", nil
}
