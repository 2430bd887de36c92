package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/api/view"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const (
	msgPlansFailed  = "Failed to load subscriptions"
	msgSelectFailed = "Failed to choose plan"
)

type SubscriptionHandler struct {
	subscriptions ports.SubscriptionService
}

func NewSubscriptionHandler(subscriptions ports.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

type subscriptionForm struct {
	Name         string `form:"name" validate:"required" label:"Plan name"`
	Price        string `form:"price" validate:"required,numeric" label:"Price"`
	DurationDays string `form:"duration_days" validate:"omitempty,number" label:"Duration"`
}

type choosePlanForm struct {
	Subscription string `form:"subscription" validate:"required" label:"Plan"`
}

func (h *SubscriptionHandler) List(c echo.Context) error {
	p := newPage(c, "Subscription Plans", &subscriptionForm{})
	return h.render(c, p, http.StatusOK)
}

func (h *SubscriptionHandler) Create(c echo.Context) error {
	form := &subscriptionForm{}
	p := newPage(c, "Subscription Plans", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "subscriptions", "add_subscription", p, domain.MsgFixErrors); !ok {
		return err
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		return invalid(c, "subscriptions", "add_subscription", p, FieldErrors{"price": "Price must be a number"}, domain.MsgFixErrors)
	}
	days := 0
	if form.DurationDays != "" {
		days, _ = strconv.Atoi(form.DurationDays)
	}

	msg, err := h.subscriptions.Create(c.Request().Context(), sessionID(c), ports.CreateSubscriptionInput{
		Name:         form.Name,
		Price:        price,
		DurationDays: days,
	})
	if err != nil {
		return fail(c, "subscriptions", p, err, msgGeneric)
	}

	p.Form = &subscriptionForm{}
	p.Succeed(orDefault(msg, "Subscription plan created"))
	return h.render(c, p, http.StatusCreated)
}

// render loads the plan catalogue under the form.
func (h *SubscriptionHandler) render(c echo.Context, p *view.Page, status int) error {
	plans, err := h.subscriptions.List(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "subscriptions", p, err, msgPlansFailed)
	}
	p.Data = plans
	return c.Render(status, "subscriptions", p)
}

func (h *SubscriptionHandler) ChoosePage(c echo.Context) error {
	p := newPage(c, "Choose a Plan", &choosePlanForm{})
	plans, err := h.subscriptions.List(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "choose_plan", p, err, msgPlansFailed)
	}
	p.Data = plans
	return c.Render(http.StatusOK, "choose_plan", p)
}

// Select puts the signed-in client on the chosen plan.
func (h *SubscriptionHandler) Select(c echo.Context) error {
	form := &choosePlanForm{}
	p := newPage(c, "Choose a Plan", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "choose_plan", "choose_plan", p, domain.MsgFixErrors); !ok {
		return err
	}

	msg, err := h.subscriptions.Select(c.Request().Context(), sessionID(c), form.Subscription)
	if err != nil {
		return fail(c, "choose_plan", p, err, msgSelectFailed)
	}
	p.Succeed(msg)
	if plans, err := h.subscriptions.List(c.Request().Context(), sessionID(c)); err == nil {
		p.Data = plans
	}
	return c.Render(http.StatusOK, "choose_plan", p)
}
