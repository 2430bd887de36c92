package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

// CashPaymentInput is a manually recorded payment. A nil Amount lets the backend
// decide what to charge.
type CashPaymentInput struct {
	Phone         string
	Subscription  string
	PaymentStatus string
	Amount        *decimal.Decimal
	PaymentDate   string // YYYY-MM-DD
}

// MobilePaymentInput starts a mobile-money (M-PESA STK push) payment.
// Email identifies the paying client to the backend.
type MobilePaymentInput struct {
	Plan  string
	Phone string
	Email string
}

type PaymentService interface {
	MarkCash(ctx context.Context, sessionID string, input CashPaymentInput) (*domain.CashPaymentReceipt, error)
	StartMobile(ctx context.Context, sessionID string, input MobilePaymentInput) (string, error)
	ListForClient(ctx context.Context, sessionID string) ([]domain.Payment, error)
}
