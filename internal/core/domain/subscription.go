package domain

import "github.com/shopspring/decimal"

// Subscription is a membership plan offered by the gym.
type Subscription struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	DurationDays int             `json:"duration_days"`
}

// PlanStats is a plan together with the number of clients currently on it.
type PlanStats struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Clients int             `json:"clients"`
}
