package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// Suggestion is a proposed, unconfirmed transfer that reduces outstanding
// balances toward zero. Not an authoritative record until a user confirms
// it and a Settlement is appended.
type Suggestion struct {
	FromMemberID string
	ToMemberID   string
	Amount       decimal.Decimal
	Currency     money.Currency
}

// GenerateSettlements nets signed balances into direct transfers using
// greedy bilateral matching.
//
// Creditors are visited in descending balance order and debtors in
// ascending (most negative first); equal balances keep their input order,
// so the output is fully deterministic. Each step transfers
// min(creditor remainder, |debtor remainder|) and advances whichever side
// reached zero. At most len(creditors)+len(debtors)-1 suggestions come out,
// and when the balances sum to exactly zero every debt is covered.
//
// When the balances carry a rounding residue and do not sum to zero, the
// remainder is left unmatched on whichever side is larger rather than
// silently dropped or smeared across transfers.
//
// GenerateSettlements never fails: with no creditors or no debtors it
// returns an empty list.
func GenerateSettlements(balances []Balance, currency money.Currency) []Suggestion {
	var creditors, debtors []Balance
	for _, b := range balances {
		switch {
		case b.Amount.IsPositive():
			creditors = append(creditors, b)
		case b.Amount.IsNegative():
			debtors = append(debtors, b)
		}
	}

	// Stable sorts keep roster order on ties; the match order is part of
	// the observable contract.
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].Amount.GreaterThan(creditors[j].Amount)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].Amount.LessThan(debtors[j].Amount)
	})

	due := make([]decimal.Decimal, len(creditors))
	for i, c := range creditors {
		due[i] = c.Amount
	}
	owed := make([]decimal.Decimal, len(debtors))
	for i, d := range debtors {
		owed[i] = d.Amount.Neg()
	}

	var suggestions []Suggestion
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		transfer := decimal.Min(owed[i], due[j])
		if transfer.IsPositive() {
			suggestions = append(suggestions, Suggestion{
				FromMemberID: debtors[i].MemberID,
				ToMemberID:   creditors[j].MemberID,
				Amount:       transfer,
				Currency:     currency,
			})
		}

		owed[i] = owed[i].Sub(transfer)
		due[j] = due[j].Sub(transfer)

		if owed[i].LessThanOrEqual(decimal.Zero) {
			i++
		}
		if due[j].LessThanOrEqual(decimal.Zero) {
			j++
		}
	}

	return suggestions
}
