package domain

import "github.com/shopspring/decimal"

const (
	PaymentSuccess = "success"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// Payment is a recorded payment as seen by the paying client.
type Payment struct {
	ID             int             `json:"id"`
	ClientID       int             `json:"client_id"`
	SubscriptionID *int            `json:"subscription_id"`
	Amount         decimal.Decimal `json:"amount"`
	MpesaReceipt   string          `json:"mpesa_receipt"`
	Status         string          `json:"status"`
	CreatedAt      Timestamp       `json:"created_at"`
}

// CashPaymentReceipt is the backend's confirmation of a manually logged payment.
// The amount actually charged is whatever the backend resolved; it is never
// computed here.
type CashPaymentReceipt struct {
	Message       string              `json:"message"`
	Client        string              `json:"client"`
	Subscription  string              `json:"subscription"`
	Amount        decimal.NullDecimal `json:"amount"`
	PaymentStatus string              `json:"payment_status"`
	PaymentDate   string              `json:"payment_date"`
	NewExpiry     string              `json:"new_expiry"`
	Note          string              `json:"note"`
}

// Lines renders the receipt the way the cash payment screen shows it.
func (r CashPaymentReceipt) Lines() []string {
	lines := []string{
		"Payment processed for: " + r.Client,
		"Plan: " + r.Subscription,
	}
	if r.Amount.Valid {
		lines = append(lines, "Amount: "+r.Amount.Decimal.StringFixed(2))
	}
	lines = append(lines, "Status: "+r.PaymentStatus)
	if r.PaymentDate != "" {
		lines = append(lines, "Payment date: "+r.PaymentDate)
	}
	if r.NewExpiry != "" {
		lines = append(lines, "New expiry: "+r.NewExpiry)
	}
	if r.Note != "" {
		lines = append(lines, r.Note)
	}
	return lines
}
