package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/middleware"
	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/money"
	"github.com/ShotaYmzk/onme-backend/internal/service"
)

// SettlementHandler handles settlement recording and history requests.
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a SettlementHandler.
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// RecordSettlementRequest is the JSON body for recording a transfer.
// suggested_amount, when present, caps the recorded amount: anything in
// (0, suggested] is a valid partial settlement.
type RecordSettlementRequest struct {
	FromMemberID    string           `json:"from_member_id"`
	ToMemberID      string           `json:"to_member_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Currency        string           `json:"currency"`
	Note            string           `json:"note"`
	SuggestedAmount *decimal.Decimal `json:"suggested_amount"`
}

// SettlementResponse is the public view of a recorded settlement.
type SettlementResponse struct {
	ID           string          `json:"id"`
	GroupID      string          `json:"group_id"`
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	Note         string          `json:"note,omitempty"`
	Completed    bool            `json:"completed"`
	CreatedAt    int64           `json:"created_at"`
	SettledAt    int64           `json:"settled_at"`
}

func toSettlementResponse(s *models.Settlement) SettlementResponse {
	return SettlementResponse{
		ID:           s.ID,
		GroupID:      s.GroupID,
		FromMemberID: s.FromMemberID,
		ToMemberID:   s.ToMemberID,
		Amount:       s.Amount,
		Currency:     string(s.Currency),
		Note:         s.Note,
		Completed:    s.Completed,
		CreatedAt:    s.CreatedAt,
		SettledAt:    s.SettledAt,
	}
}

// Record appends a completed settlement to the group's history.
func (h *SettlementHandler) Record(c echo.Context) error {
	var req RecordSettlementRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}

	currency, err := money.ParseCurrency(req.Currency)
	if err != nil {
		return NewValidationError(c, err.Error())
	}

	settlement, err := h.settlementService.Record(c.Request().Context(), service.RecordSettlementInput{
		GroupID:         c.Param("id"),
		FromMemberID:    req.FromMemberID,
		ToMemberID:      req.ToMemberID,
		Amount:          req.Amount,
		Currency:        currency,
		Note:            req.Note,
		CreatedBy:       middleware.GetUserID(c),
		SuggestedAmount: req.SuggestedAmount,
	})
	if err != nil {
		return ServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toSettlementResponse(settlement))
}

// History retrieves the recorded settlements for a group, newest first.
func (h *SettlementHandler) History(c echo.Context) error {
	settlements, err := h.settlementService.History(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ServiceError(c, err)
	}

	out := make([]SettlementResponse, len(settlements))
	for i, s := range settlements {
		out[i] = toSettlementResponse(s)
	}
	return c.JSON(http.StatusOK, out)
}
