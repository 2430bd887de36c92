package handler

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

func TestAdminDashboard_UnauthorizedIsLeftToErrorHandler(t *testing.T) {
	e := newTestEcho(t)
	dashboards := &stubDashboardService{adminErr: &domain.APIError{Kind: domain.KindUnauthorized, Status: 401}}
	h := NewDashboardHandler(dashboards, &stubSubscriptionService{plans: []domain.Subscription{{ID: 1}}})

	c, rec := newFormContext(e, http.MethodGet, "/dashboard/admin", nil)
	err := h.Admin(c)
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected nothing rendered, got:\n%s", rec.Body.String())
	}
}

func TestAdminDashboard_Renders(t *testing.T) {
	e := newTestEcho(t)
	dashboards := &stubDashboardService{adminStats: &domain.AdminStats{
		Clients:  12,
		Payments: decimal.NewFromInt(30000),
		Expenses: decimal.NewFromInt(4500),
	}}
	h := NewDashboardHandler(dashboards, &stubSubscriptionService{plans: []domain.Subscription{{ID: 1, Name: "Monthly", Price: decimal.NewFromInt(2500)}}})

	c, rec := newFormContext(e, http.MethodGet, "/dashboard/admin", nil)
	if err := h.Admin(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body := rec.Body.String()
	for _, want := range []string{"KES 30000.00", "KES 4500.00", "Monthly"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in body:\n%s", want, body)
		}
	}
}

func TestAdminDashboard_PlanLoadFailureShowsFallback(t *testing.T) {
	e := newTestEcho(t)
	dashboards := &stubDashboardService{adminStats: &domain.AdminStats{}}
	h := NewDashboardHandler(dashboards, &stubSubscriptionService{err: &domain.APIError{Kind: domain.KindRejected, Status: 500}})

	c, rec := newFormContext(e, http.MethodGet, "/dashboard/admin", nil)
	if err := h.Admin(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), msgDashboardFailed) {
		t.Fatalf("expected fallback message in body:\n%s", rec.Body.String())
	}
}

func TestAdminChart_NoPlansIsNoContent(t *testing.T) {
	e := newTestEcho(t)
	h := NewDashboardHandler(&stubDashboardService{adminStats: &domain.AdminStats{}}, &stubSubscriptionService{})

	c, rec := newFormContext(e, http.MethodGet, "/dashboard/admin/chart.png", nil)
	if err := h.AdminChart(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestAdminChart_ErrorPassesThrough(t *testing.T) {
	e := newTestEcho(t)
	want := &domain.APIError{Kind: domain.KindUnreachable, Err: errors.New("refused")}
	h := NewDashboardHandler(&stubDashboardService{adminErr: want}, &stubSubscriptionService{})

	c, _ := newFormContext(e, http.MethodGet, "/dashboard/admin/chart.png", nil)
	if err := h.AdminChart(c); !errors.Is(err, want) {
		t.Fatalf("expected backend error, got %v", err)
	}
}
