package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fitflow/fitflow-web/internal/api/middleware"
	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const (
	msgCashFormLoadFailed = "Failed to load clients or subscriptions"
	msgCashPaymentFailed  = "Payment logging failed"
	msgSelectPlanAndPhone = "Please select a plan and enter your phone number."
	msgMobilePaymentSent  = "STK push sent. Check your phone."
	msgMobilePayFailed    = "Failed to initiate payment."
	msgPaymentsFailed     = "Failed to load payments"
)

type PaymentHandler struct {
	payments      ports.PaymentService
	clients       ports.ClientService
	subscriptions ports.SubscriptionService
	now           func() time.Time
}

func NewPaymentHandler(payments ports.PaymentService, clients ports.ClientService, subscriptions ports.SubscriptionService) *PaymentHandler {
	return &PaymentHandler{payments: payments, clients: clients, subscriptions: subscriptions, now: time.Now}
}

type cashPaymentForm struct {
	Phone         string `form:"phone" validate:"required" label:"Phone"`
	Subscription  string `form:"subscription" validate:"required" label:"Subscription plan"`
	PaymentStatus string `form:"payment_status" validate:"omitempty,oneof=success pending failed" label:"Payment status"`
	Amount        string `form:"amount" validate:"omitempty,numeric" label:"Amount"`
	PaymentDate   string `form:"payment_date" validate:"omitempty,datetime=2006-01-02" label:"Payment date"`
}

type mobilePaymentForm struct {
	Plan  string `form:"plan" validate:"required" label:"Plan"`
	Phone string `form:"phone" validate:"required" label:"Phone"`
}

type cashPaymentData struct {
	Clients []domain.Client
	Plans   []domain.Subscription
	Receipt *domain.CashPaymentReceipt
}

func (h *PaymentHandler) blankCashForm() *cashPaymentForm {
	return &cashPaymentForm{
		PaymentStatus: domain.PaymentSuccess,
		PaymentDate:   h.now().Format(time.DateOnly),
	}
}

// CashPage renders the manual payment form; clients and plans load concurrently.
func (h *PaymentHandler) CashPage(c echo.Context) error {
	p := newPage(c, "Record Manual Payment", h.blankCashForm())

	data, err := h.loadCashForm(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "mark_cash_payment", p, err, msgCashFormLoadFailed)
	}
	p.Data = data
	return c.Render(http.StatusOK, "mark_cash_payment", p)
}

func (h *PaymentHandler) loadCashForm(ctx context.Context, sid string) (*cashPaymentData, error) {
	data := &cashPaymentData{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clients, err := h.clients.List(gctx, sid, ports.ClientFilter{})
		data.Clients = clients
		return err
	})
	g.Go(func() error {
		plans, err := h.subscriptions.List(gctx, sid)
		data.Plans = plans
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return data, nil
}

// MarkCash records a manual payment. An empty amount is sent as null and the
// backend charges the plan price; the receipt shows what it actually recorded.
func (h *PaymentHandler) MarkCash(c echo.Context) error {
	form := h.blankCashForm()
	p := newPage(c, "Record Manual Payment", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "mark_cash_payment", "mark_cash_payment", p, domain.MsgFixErrors); !ok {
		return err
	}

	var amount *decimal.Decimal
	if form.Amount != "" {
		d, err := decimal.NewFromString(form.Amount)
		if err != nil {
			return invalid(c, "mark_cash_payment", "mark_cash_payment", p, FieldErrors{"amount": "Amount must be a number"}, domain.MsgFixErrors)
		}
		amount = &d
	}

	ctx := c.Request().Context()
	sid := sessionID(c)
	receipt, err := h.payments.MarkCash(ctx, sid, ports.CashPaymentInput{
		Phone:         form.Phone,
		Subscription:  form.Subscription,
		PaymentStatus: form.PaymentStatus,
		Amount:        amount,
		PaymentDate:   form.PaymentDate,
	})
	if err != nil {
		return fail(c, "mark_cash_payment", p, err, msgCashPaymentFailed)
	}

	data, err := h.loadCashForm(ctx, sid)
	if err != nil {
		data = &cashPaymentData{}
	}
	data.Receipt = receipt
	p.Data = data
	p.Form = h.blankCashForm()
	p.Succeed(orDefault(receipt.Message, "Payment processed"))
	return c.Render(http.StatusOK, "mark_cash_payment", p)
}

func (h *PaymentHandler) MobilePage(c echo.Context) error {
	p := newPage(c, "Pay for a Plan", &mobilePaymentForm{})
	plans, err := h.subscriptions.List(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "payment", p, err, msgPlansFailed)
	}
	p.Data = plans
	return c.Render(http.StatusOK, "payment", p)
}

// StartMobile asks the backend to send an M-PESA STK push to the given phone.
func (h *PaymentHandler) StartMobile(c echo.Context) error {
	form := &mobilePaymentForm{}
	p := newPage(c, "Pay for a Plan", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "payment", "mobile_payment", p, msgSelectPlanAndPhone); !ok {
		return err
	}

	ctx := c.Request().Context()
	msg, err := h.payments.StartMobile(ctx, sessionID(c), ports.MobilePaymentInput{
		Plan:  form.Plan,
		Phone: form.Phone,
		Email: middleware.PrincipalFrom(c),
	})
	if err != nil {
		return fail(c, "payment", p, err, msgMobilePayFailed)
	}

	p.Succeed(orDefault(msg, msgMobilePaymentSent))
	if plans, err := h.subscriptions.List(ctx, sessionID(c)); err == nil {
		p.Data = plans
	}
	return c.Render(http.StatusOK, "payment", p)
}

// History lists the signed-in client's payments.
func (h *PaymentHandler) History(c echo.Context) error {
	p := newPage(c, "My Payments", nil)
	payments, err := h.payments.ListForClient(c.Request().Context(), sessionID(c))
	if err != nil {
		return fail(c, "payments", p, err, msgPaymentsFailed)
	}
	p.Data = payments
	return c.Render(http.StatusOK, "payments", p)
}
