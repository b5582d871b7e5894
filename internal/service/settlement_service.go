package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/money"
	"github.com/ShotaYmzk/onme-backend/internal/storage"
)

// SettlementService records completed transfers and exposes their history.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a SettlementService.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlementInput describes a transfer the user confirmed.
// SuggestedAmount, when set, is the amount of the suggestion being settled;
// the recorded amount may be anything in (0, suggested] — a partial
// settlement — but never more.
type RecordSettlementInput struct {
	GroupID         string
	FromMemberID    string
	ToMemberID      string
	Amount          decimal.Decimal
	Currency        money.Currency
	Note            string
	CreatedBy       string
	SuggestedAmount *decimal.Decimal
}

// Record appends an immutable completed settlement. The recorded amount is
// stored verbatim; there is no edit or undo path afterward.
func (s *SettlementService) Record(ctx context.Context, input RecordSettlementInput) (*models.Settlement, error) {
	slog.Info("RecordSettlement request received",
		"group_id", input.GroupID,
		"from", input.FromMemberID,
		"to", input.ToMemberID,
		"amount", input.Amount,
	)

	if !input.Amount.IsPositive() {
		return nil, ErrAmountNotPositive
	}
	if input.FromMemberID == input.ToMemberID {
		return nil, ErrSelfSettlement
	}
	if input.SuggestedAmount != nil && input.Amount.GreaterThan(*input.SuggestedAmount) {
		return nil, ErrAmountExceedsSuggested
	}

	if _, err := s.store.GetGroup(ctx, input.GroupID); err != nil {
		return nil, err
	}
	for _, memberID := range []string{input.FromMemberID, input.ToMemberID} {
		member, err := s.store.GetMember(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if member.GroupID != input.GroupID {
			return nil, fmt.Errorf("member %s: %w", memberID, ErrMemberNotInGroup)
		}
		if member.Status != models.StatusActive {
			return nil, fmt.Errorf("member %s: %w", memberID, ErrMemberArchived)
		}
	}

	settlement := &models.Settlement{
		GroupID:      input.GroupID,
		FromMemberID: input.FromMemberID,
		ToMemberID:   input.ToMemberID,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Note:         input.Note,
		CreatedBy:    input.CreatedBy,
		Completed:    true,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, fmt.Errorf("failed to record settlement: %w", err)
	}

	slog.Info("Settlement recorded", "settlement_id", settlement.ID, "group_id", input.GroupID)
	return settlement, nil
}

// History retrieves the recorded settlements for a group, newest first.
func (s *SettlementService) History(ctx context.Context, groupID string) ([]*models.Settlement, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}
