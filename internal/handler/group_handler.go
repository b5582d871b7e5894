package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/money"
	"github.com/ShotaYmzk/onme-backend/internal/service"
)

// GroupHandler handles group and roster requests.
type GroupHandler struct {
	groupService   *service.GroupService
	balanceService *service.BalanceService
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(groupService *service.GroupService, balanceService *service.BalanceService) *GroupHandler {
	return &GroupHandler{groupService: groupService, balanceService: balanceService}
}

// CreateGroupRequest is the JSON body for creating a group.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	MemberNames []string `json:"member_names"`
}

// AddMemberRequest is the JSON body for adding a roster member.
type AddMemberRequest struct {
	Name string `json:"name"`
}

// MemberResponse is the public view of a roster member.
type MemberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GroupResponse is the public view of a group.
type GroupResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt int64            `json:"created_at"`
	Members   []MemberResponse `json:"members,omitempty"`
}

// BalanceEntry is one member's net position in the display currency.
type BalanceEntry struct {
	MemberID string          `json:"member_id"`
	Amount   decimal.Decimal `json:"amount"`
}

// SuggestionEntry is one suggested transfer.
type SuggestionEntry struct {
	FromMemberID string          `json:"from_member_id"`
	ToMemberID   string          `json:"to_member_id"`
	Amount       decimal.Decimal `json:"amount"`
}

// BalancesResponse is the result of one balance computation.
type BalancesResponse struct {
	GroupID     string            `json:"group_id"`
	Currency    string            `json:"currency"`
	RatesDate   string            `json:"rates_date"`
	Balances    []BalanceEntry    `json:"balances"`
	Suggestions []SuggestionEntry `json:"suggestions"`
}

func toMemberResponses(members []models.Member) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i, m := range members {
		out[i] = MemberResponse{ID: m.ID, Name: m.Name}
	}
	return out
}

// Create creates a group with an initial roster.
func (h *GroupHandler) Create(c echo.Context) error {
	var req CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}
	if req.Name == "" {
		return NewValidationError(c, "name is required")
	}

	group, members, err := h.groupService.CreateGroup(c.Request().Context(), req.Name, req.MemberNames)
	if err != nil {
		return ServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
		Members:   toMemberResponses(members),
	})
}

// List retrieves all groups.
func (h *GroupHandler) List(c echo.Context) error {
	groups, err := h.groupService.ListGroups(c.Request().Context())
	if err != nil {
		return ServiceError(c, err)
	}

	out := make([]GroupResponse, len(groups))
	for i, g := range groups {
		out[i] = GroupResponse{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
	}
	return c.JSON(http.StatusOK, out)
}

// Get retrieves a group with its active roster.
func (h *GroupHandler) Get(c echo.Context) error {
	group, members, err := h.groupService.GetGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ServiceError(c, err)
	}

	return c.JSON(http.StatusOK, GroupResponse{
		ID:        group.ID,
		Name:      group.Name,
		CreatedAt: group.CreatedAt,
		Members:   toMemberResponses(members),
	})
}

// AddMember adds a member to the roster.
func (h *GroupHandler) AddMember(c echo.Context) error {
	var req AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "invalid request body")
	}
	if req.Name == "" {
		return NewValidationError(c, "name is required")
	}

	member, err := h.groupService.AddMember(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		return ServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, MemberResponse{ID: member.ID, Name: member.Name})
}

// ArchiveMember soft-deletes a roster member.
func (h *GroupHandler) ArchiveMember(c echo.Context) error {
	if err := h.groupService.ArchiveMember(c.Request().Context(), c.Param("id"), c.Param("memberId")); err != nil {
		return ServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Balances computes the group's balances and settlement suggestions in the
// requested display currency (default USD).
func (h *GroupHandler) Balances(c echo.Context) error {
	display := money.USD
	if raw := c.QueryParam("currency"); raw != "" {
		parsed, err := money.ParseCurrency(raw)
		if err != nil {
			return NewValidationError(c, err.Error())
		}
		display = parsed
	}

	result, err := h.balanceService.ComputeGroupBalances(c.Request().Context(), c.Param("id"), display)
	if err != nil {
		return ServiceError(c, err)
	}

	balances := make([]BalanceEntry, len(result.Balances))
	for i, b := range result.Balances {
		balances[i] = BalanceEntry{MemberID: b.MemberID, Amount: b.Amount}
	}
	suggestions := make([]SuggestionEntry, len(result.Suggestions))
	for i, s := range result.Suggestions {
		suggestions[i] = SuggestionEntry{FromMemberID: s.FromMemberID, ToMemberID: s.ToMemberID, Amount: s.Amount}
	}

	return c.JSON(http.StatusOK, BalancesResponse{
		GroupID:     result.GroupID,
		Currency:    string(result.Currency),
		RatesDate:   result.RatesDate,
		Balances:    balances,
		Suggestions: suggestions,
	})
}
