package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/fitflow/fitflow-web/internal/core/domain"
	"github.com/fitflow/fitflow-web/internal/core/ports"
)

const msgExpensesFailed = "Failed to fetch expenses"

type ExpenseHandler struct {
	expenses ports.ExpenseService
}

func NewExpenseHandler(expenses ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type addExpenseForm struct {
	Expense string `form:"expense" validate:"required" label:"Expense description"`
	Cost    string `form:"cost" validate:"required,numeric" label:"Cost"`
}

type expenseQuery struct {
	Month string `query:"month" validate:"omitempty,number" label:"Month"`
	Year  string `query:"year" validate:"omitempty,number,len=4" label:"Year"`
}

func (h *ExpenseHandler) NewPage(c echo.Context) error {
	return c.Render(http.StatusOK, "add_expense", newPage(c, "Add Expense", &addExpenseForm{}))
}

func (h *ExpenseHandler) Add(c echo.Context) error {
	form := &addExpenseForm{}
	p := newPage(c, "Add Expense", form)
	if err := c.Bind(form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	if ok, err := validate(c, form, "add_expense", "add_expense", p, domain.MsgFixErrors); !ok {
		return err
	}
	cost, err := decimal.NewFromString(form.Cost)
	if err != nil {
		return invalid(c, "add_expense", "add_expense", p, FieldErrors{"cost": "Cost must be a number"}, domain.MsgFixErrors)
	}

	msg, err := h.expenses.Add(c.Request().Context(), sessionID(c), ports.AddExpenseInput{
		Description: form.Expense,
		Cost:        cost,
	})
	if err != nil {
		return fail(c, "add_expense", p, err, msgGeneric)
	}

	p.Form = &addExpenseForm{}
	p.Succeed(orDefault(msg, "Expense added successfully!"))
	return c.Render(http.StatusCreated, "add_expense", p)
}

// List renders the expenses of one month (or a whole year when month is empty)
// with the backend's total.
func (h *ExpenseHandler) List(c echo.Context) error {
	q := &expenseQuery{}
	p := newPage(c, "Expenses", q)
	if err := c.Bind(q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if ok, err := validate(c, q, "expenses", "expense_filter", p, domain.MsgFixErrors); !ok {
		return err
	}
	month, _ := strconv.Atoi(q.Month)
	year, _ := strconv.Atoi(q.Year)
	if q.Month != "" && (month < 1 || month > 12) {
		return invalid(c, "expenses", "expense_filter", p, FieldErrors{"month": "Month must be between 1 and 12"}, domain.MsgFixErrors)
	}

	report, err := h.expenses.List(c.Request().Context(), sessionID(c), ports.ExpenseFilter{Month: month, Year: year})
	if err != nil {
		return fail(c, "expenses", p, err, msgExpensesFailed)
	}
	if report.Month != nil && q.Month == "" {
		q.Month = strconv.Itoa(*report.Month)
	}
	if q.Year == "" && report.Year > 0 {
		q.Year = strconv.Itoa(report.Year)
	}
	p.Data = report
	return c.Render(http.StatusOK, "expenses", p)
}
