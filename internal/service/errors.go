// Package service implements the application services over the store and
// the ledger engine. Services validate input at the boundary, log with
// slog, and keep the pure computations in internal/ledger free of I/O.
package service

import "errors"

var (
	ErrAmountNotPositive      = errors.New("amount must be positive")
	ErrAmountExceedsSuggested = errors.New("amount exceeds the suggested transfer")
	ErrMemberNotInGroup       = errors.New("member does not belong to this group")
	ErrMemberArchived         = errors.New("member is archived")
	ErrSelfSettlement         = errors.New("payer and receiver must differ")
	ErrNoPayments             = errors.New("expense needs at least one payment")
	ErrNoParticipants         = errors.New("expense needs at least one participant")
)
