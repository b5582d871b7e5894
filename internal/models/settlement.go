package models

import (
	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// Settlement is a completed transfer between two members, recorded when a
// user confirms a suggestion. The amount may be less than the suggested
// transfer (partial settlement). Settlements are immutable once recorded;
// there is no edit or undo path.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// FromMemberID is the debtor who paid.
	FromMemberID string

	// ToMemberID is the creditor who was paid.
	ToMemberID string

	// Amount is the amount actually transferred, not the suggested one.
	Amount decimal.Decimal

	Currency money.Currency

	// Note is an optional free-text description.
	Note string

	Completed bool

	// CreatedBy is the user who recorded the settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64

	// SettledAt is the Unix timestamp when the transfer completed.
	SettledAt int64
}
