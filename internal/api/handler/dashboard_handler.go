package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/fitflow/fitflow-web/internal/api/charts"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const (
	msgDashboardFailed = "Failed to load dashboard"
)

type DashboardHandler struct {
	dashboards    ports.DashboardService
	subscriptions ports.SubscriptionService
}

func NewDashboardHandler(dashboards ports.DashboardService, subscriptions ports.SubscriptionService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, subscriptions: subscriptions}
}

type adminDashboardData struct {
	Stats *domain.AdminStats
	Plans []domain.Subscription
}

// Admin renders the admin dashboard. Stats and plan catalogue load concurrently.
func (h *DashboardHandler) Admin(c echo.Context) error {
	p := newPage(c, "Admin Dashboard", nil)
	sid := sessionID(c)

	var data adminDashboardData
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		stats, err := h.dashboards.Admin(ctx, sid)
		data.Stats = stats
		return err
	})
	g.Go(func() error {
		plans, err := h.subscriptions.List(ctx, sid)
		data.Plans = plans
		return err
	})
	if err := g.Wait(); err != nil {
		return fail(c, "admin_dashboard", p, err, msgDashboardFailed)
	}

	p.Data = &data
	return c.Render(http.StatusOK, "admin_dashboard", p)
}

// AdminChart serves the clients-per-plan bar chart as PNG.
func (h *DashboardHandler) AdminChart(c echo.Context) error {
	stats, err := h.dashboards.Admin(c.Request().Context(), sessionID(c))
	if err != nil {
		return err
	}
	png, err := charts.ClientsPerPlan(stats.Subscriptions)
	if err != nil {
		return err
	}
	if png == nil {
		return c.NoContent(http.StatusNoContent)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, "image/png", png)
}

func (h *DashboardHandler) Client(c echo.Context) error {
	p := newPage(c, "My Dashboard", nil)

	dash, err := h.dashboards.Client(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "client_dashboard", p, err, msgDashboardFailed)
	}
	p.Data = dash
	return c.Render(http.StatusOK, "client_dashboard", p)
}
