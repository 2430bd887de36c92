package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/core/domain"
)

type AddExpenseInput struct {
	Description string
	Cost        decimal.Decimal
}

// ExpenseFilter selects a month (1-12, 0 for the whole year) of a year (0 for the current one).
type ExpenseFilter struct {
	Month int
	Year  int
}

type ExpenseService interface {
	Add(ctx context.Context, sessionID string, input AddExpenseInput) (string, error)
	List(ctx context.Context, sessionID string, filter ExpenseFilter) (*domain.ExpenseReport, error)
}
