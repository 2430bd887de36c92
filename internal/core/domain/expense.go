package domain

import "github.com/shopspring/decimal"

type Expense struct {
	ID          int             `json:"id"`
	Description string          `json:"expense"`
	Cost        decimal.Decimal `json:"cost"`
	CreatedAt   Timestamp       `json:"created_at"`
}

// ExpenseReport is one filtered page of expenses plus the backend-computed total.
type ExpenseReport struct {
	Expenses []Expense       `json:"expenses"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Month    *int            `json:"month"`
	Year     int             `json:"year"`
}
