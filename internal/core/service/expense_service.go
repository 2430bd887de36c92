package service

import (
	"context"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

type ExpenseService struct {
	backend ports.Backend
}

func NewExpenseService(backend ports.Backend) *ExpenseService {
	return &ExpenseService{backend: backend}
}

type addExpenseRequest struct {
	Expense string          `json:"expense"`
	Cost    decimal.Decimal `json:"cost"`
}

func (s *ExpenseService) Add(ctx context.Context, sessionID string, input ports.AddExpenseInput) (string, error) {
	var resp messageResponse
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodPost,
		Path:          "/addExpense",
		Body:          addExpenseRequest{Expense: input.Description, Cost: input.Cost},
		Authenticated: true,
	}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// List fetches the expense report. A zero Month lists the whole year and a zero
// Year means the current one.
func (s *ExpenseService) List(ctx context.Context, sessionID string, filter ports.ExpenseFilter) (*domain.ExpenseReport, error) {
	query := map[string]string{}
	if filter.Month > 0 {
		query["month"] = strconv.Itoa(filter.Month)
	}
	if filter.Year > 0 {
		query["year"] = strconv.Itoa(filter.Year)
	}

	var report domain.ExpenseReport
	if err := call(ctx, s.backend, sessionID, ports.BackendRequest{
		Method:        http.MethodGet,
		Path:          "/expenses",
		Query:         query,
		Authenticated: true,
	}, &report); err != nil {
		return nil, err
	}
	if report.Expenses == nil {
		report.Expenses = []domain.Expense{}
	}
	return &report, nil
}
