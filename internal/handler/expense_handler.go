package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/money"
	"github.com/ShotaYmzk/onme-backend/internal/service"
)

// ExpenseHandler handles expense requests.
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// PaymentBody is one payer's contribution in an expense request.
type PaymentBody struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// ParticipantBody is one member's share in an expense request. Share may be
// omitted when split_equally is set.
type ParticipantBody struct {
	MemberID string          `json:"member_id"`
	Share    decimal.Decimal `json:"share"`
}

// CreateExpenseRequest is the JSON body for recording an expense.
type CreateExpenseRequest struct {
	Title        string            `json:"title"`
	Total        decimal.Decimal   `json:"total"`
	Currency     string            `json:"currency"`
	Category     string            `json:"category"`
	Payments     []PaymentBody     `json:"payments"`
	Participants []ParticipantBody `json:"participants"`
	SplitEqually bool              `json:"split_equally"`
}

// ExpenseResponse is the public view of an expense.
type ExpenseResponse struct {
	ID               string            `json:"id"`
	GroupID          string            `json:"group_id"`
	Title            string            `json:"title"`
	Total            decimal.Decimal   `json:"total"`
	Currency         string            `json:"currency"`
	Category         string            `json:"category,omitempty"`
	CreatedAt        int64             `json:"created_at"`
	Payments         []PaymentBody     `json:"payments"`
	Participants     []ParticipantBody `json:"participants"`
	PaymentsMismatch bool              `json:"payments_mismatch,omitempty"`
}

func toExpenseResponse(expense *models.Expense, mismatch bool) ExpenseResponse {
	payments := make([]PaymentBody, len(expense.Payments))
	for i, p := range expense.Payments {
		payments[i] = PaymentBody{MemberID: p.MemberID, Amount: p.Amount}
	}
	participants := make([]ParticipantBody, len(expense.Participants))
	for i, p := range expense.Participants {
		participants[i] = ParticipantBody{MemberID: p.MemberID, Share: p.Share}
	}
	return ExpenseResponse{
		ID:               expense.ID,
		GroupID:          expense.GroupID,
		Title:            expense.Title,
		Total:            expense.Total,
		Currency:         string(expense.Currency),
		Category:         expense.Category,
		CreatedAt:        expense.CreatedAt,
		Payments:         payments,
		Participants:     participants,
		PaymentsMismatch: mismatch,
	}
}

// Create records a new expense for a group.
func (h *ExpenseHandler) Create(c echo.Context) error {
	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	currency, err := money.ParseCurrency(req.Currency)
	if err != nil {
		return NewValidationError(c, err.Error())
	}

	payments := make([]service.PaymentInput, len(req.Payments))
	for i, p := range req.Payments {
		payments[i] = service.PaymentInput{MemberID: p.MemberID, Amount: p.Amount}
	}
	participants := make([]service.ParticipantInput, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = service.ParticipantInput{MemberID: p.MemberID, Share: p.Share}
	}

	result, err := h.expenseService.AddExpense(c.Request().Context(), service.AddExpenseInput{
		GroupID:      c.Param("id"),
		Title:        req.Title,
		Total:        req.Total,
		Currency:     currency,
		Category:     req.Category,
		Payments:     payments,
		Participants: participants,
		SplitEqually: req.SplitEqually,
	})
	if err != nil {
		return ServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toExpenseResponse(result.Expense, result.PaymentsMismatch))
}

// List retrieves the active expenses for a group.
func (h *ExpenseHandler) List(c echo.Context) error {
	expenses, err := h.expenseService.ListExpenses(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ServiceError(c, err)
	}

	out := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = toExpenseResponse(&expenses[i], false)
	}
	return c.JSON(http.StatusOK, out)
}

// Archive soft-deletes an expense.
func (h *ExpenseHandler) Archive(c echo.Context) error {
	if err := h.expenseService.ArchiveExpense(c.Request().Context(), c.Param("id"), c.Param("expenseId")); err != nil {
		return ServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
