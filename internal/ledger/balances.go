// Package ledger turns expense records into per-member net balances and
// nets those balances into a small set of suggested transfers.
//
// Everything here is a pure function over immutable inputs: no storage, no
// network, no hidden state, safe to call concurrently. Inputs arrive
// pre-filtered to active records by the storage boundary, so nothing in
// this package re-checks lifecycle status.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/exchange"
	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// Balance is one member's signed net position in a single currency.
// Positive: the group owes this member. Negative: this member owes the
// group. Ephemeral; recomputed from scratch on every request.
type Balance struct {
	MemberID string
	Amount   decimal.Decimal
	Currency money.Currency
}

// ComputeBalances aggregates payments and shares into one net balance per
// member, in roster order. Only expenses in the given currency are
// aggregated; mixing currencies requires NormalizedBalances.
//
// Every member appears in the result, including members with no activity
// (balance zero). Payments or shares referencing a member absent from the
// roster are ignored: the snapshot should be internally consistent, and a
// dangling reference is tolerated rather than fatal.
//
// When every expense's payments sum to its shares, the balances sum to
// exactly zero. Aggregation is order-independent and idempotent.
func ComputeBalances(members []models.Member, expenses []models.Expense, currency money.Currency) []Balance {
	index := make(map[string]int, len(members))
	balances := make([]Balance, 0, len(members))
	for _, m := range members {
		index[m.ID] = len(balances)
		balances = append(balances, Balance{MemberID: m.ID, Amount: decimal.Zero, Currency: currency})
	}

	for _, e := range expenses {
		if e.Currency != currency {
			continue
		}
		for _, p := range e.Payments {
			if i, ok := index[p.MemberID]; ok {
				balances[i].Amount = balances[i].Amount.Add(p.Amount)
			}
		}
		for _, part := range e.Participants {
			if i, ok := index[part.MemberID]; ok {
				balances[i].Amount = balances[i].Amount.Sub(part.Share)
			}
		}
	}

	return balances
}

// NormalizedBalances aggregates expenses of any currency into balances
// expressed in target, converting every payment and share through the one
// snapshot given. Using a single snapshot for the whole run keeps
// cross-rates consistent; callers must not refresh rates mid-computation.
//
// Returns exchange.ErrUnsupportedCurrency (wrapped) when an expense
// currency or the target is absent from the snapshot.
func NormalizedBalances(members []models.Member, expenses []models.Expense, target money.Currency, snap *exchange.Snapshot) ([]Balance, error) {
	index := make(map[string]int, len(members))
	balances := make([]Balance, 0, len(members))
	for _, m := range members {
		index[m.ID] = len(balances)
		balances = append(balances, Balance{MemberID: m.ID, Amount: decimal.Zero, Currency: target})
	}

	for _, e := range expenses {
		for _, p := range e.Payments {
			i, ok := index[p.MemberID]
			if !ok {
				continue
			}
			converted, err := exchange.Convert(money.New(p.Amount, e.Currency), target, snap)
			if err != nil {
				return nil, fmt.Errorf("expense %s: %w", e.ID, err)
			}
			balances[i].Amount = balances[i].Amount.Add(converted.Amount)
		}
		for _, part := range e.Participants {
			i, ok := index[part.MemberID]
			if !ok {
				continue
			}
			converted, err := exchange.Convert(money.New(part.Share, e.Currency), target, snap)
			if err != nil {
				return nil, fmt.Errorf("expense %s: %w", e.ID, err)
			}
			balances[i].Amount = balances[i].Amount.Sub(converted.Amount)
		}
	}

	return balances, nil
}
