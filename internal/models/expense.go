package models

import (
	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// Expense is a shared cost with its payments and participant shares.
//
// Payments are the source of truth for who paid: the stored Total is
// display metadata and is allowed to disagree with the payment sum (the
// client warns but does not enforce). Balance computations read Payments
// and Participants only.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Title is the human-readable name (e.g. "Ryokan night 1").
	Title string

	// Total is the stated expense total. Informational; see above.
	Total decimal.Decimal

	Currency money.Currency

	// Category is a free-form label (e.g. "food", "transport").
	Category string

	Status Status

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// Payments record who actually paid, in recorded order.
	Payments []Payment

	// Participants record each member's allocated share of the cost.
	Participants []Participant
}

// Payment is one payer's contribution to an expense. An expense may have
// several payments (split payers).
type Payment struct {
	// ID is the unique identifier for the payment (UUID format).
	ID string

	// ExpenseID is the owning expense.
	ExpenseID string

	// MemberID is the payer.
	MemberID string

	Amount decimal.Decimal
}

// Participant is one member's allocated share of an expense. Shares need
// not be equal; an equal split is computed by the caller before the
// participants are constructed.
type Participant struct {
	// ExpenseID is the owning expense.
	ExpenseID string

	// MemberID is the member carrying this share.
	MemberID string

	Share decimal.Decimal
}

// PaymentsTotal sums the recorded payments.
func (e *Expense) PaymentsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// SharesTotal sums the participant shares.
func (e *Expense) SharesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range e.Participants {
		total = total.Add(p.Share)
	}
	return total
}
