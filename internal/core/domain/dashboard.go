package domain

import "github.com/shopspring/decimal"

// AdminStats is the admin dashboard summary for the current month.
type AdminStats struct {
	Clients       int             `json:"clients"`
	Expenses      decimal.Decimal `json:"expenses"`
	Payments      decimal.Decimal `json:"payments"`
	Subscriptions []PlanStats     `json:"subscriptions"`
}

// ClientDashboard is the signed-in client's own profile and renewal instructions.
type ClientDashboard struct {
	Client              Client `json:"client"`
	PaymentInstructions string `json:"payment_instructions"`
}
