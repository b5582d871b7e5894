package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ShotaYmzk/onme-backend/internal/exchange"
	"github.com/ShotaYmzk/onme-backend/internal/ledger"
	"github.com/ShotaYmzk/onme-backend/internal/money"
	"github.com/ShotaYmzk/onme-backend/internal/storage"
)

// RateSource hands out exchange-rate snapshots. Satisfied by
// *exchange.Provider; tests substitute their own.
type RateSource interface {
	Rates(ctx context.Context) *exchange.Snapshot
}

// BalanceService computes group balances and settlement suggestions.
type BalanceService struct {
	store storage.Store
	rates RateSource
}

// NewBalanceService creates a BalanceService.
func NewBalanceService(store storage.Store, rates RateSource) *BalanceService {
	return &BalanceService{store: store, rates: rates}
}

// GroupBalances is one balance run: every active member's net position in
// the display currency plus the transfers that would zero them.
type GroupBalances struct {
	GroupID     string
	Currency    money.Currency
	RatesDate   string
	Balances    []ledger.Balance
	Suggestions []ledger.Suggestion
}

// ComputeGroupBalances runs one balance computation for a group in the
// given display currency.
//
// The whole run uses a single rate snapshot taken up front, so cross-rates
// stay consistent even if the provider refreshes mid-request. Recorded
// settlements are deliberately not subtracted: balances derive purely from
// expenses, and already-paid transfers will be re-suggested. Do not
// "fix" this without extending the recording model; see DESIGN.md.
func (s *BalanceService) ComputeGroupBalances(ctx context.Context, groupID string, display money.Currency) (*GroupBalances, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.store.ListActiveMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	expenses, err := s.store.ListActiveExpenses(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	snap := s.rates.Rates(ctx)

	balances, err := ledger.NormalizedBalances(members, expenses, display, snap)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize balances: %w", err)
	}
	suggestions := ledger.GenerateSettlements(balances, display)

	slog.Info("Balances computed",
		"group_id", groupID,
		"currency", display,
		"members_count", len(balances),
		"expenses_count", len(expenses),
		"suggestions_count", len(suggestions),
	)

	return &GroupBalances{
		GroupID:     groupID,
		Currency:    display,
		RatesDate:   snap.Date,
		Balances:    balances,
		Suggestions: suggestions,
	}, nil
}
