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

// ExpenseService records and archives shared expenses.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// PaymentInput is one payer's contribution.
type PaymentInput struct {
	MemberID string
	Amount   decimal.Decimal
}

// ParticipantInput is one member's share. When SplitEqually is set on the
// expense, Share is ignored and computed from the payments total.
type ParticipantInput struct {
	MemberID string
	Share    decimal.Decimal
}

// AddExpenseInput describes a new expense. Total is informational; the
// payments are the source of truth for who paid. When Total is zero it
// defaults to the payments total.
type AddExpenseInput struct {
	GroupID      string
	Title        string
	Total        decimal.Decimal
	Currency     money.Currency
	Category     string
	Payments     []PaymentInput
	Participants []ParticipantInput
	// SplitEqually computes equal shares of the payments total across the
	// listed participants (or the whole active roster when none are
	// listed), with the rounding remainder on the first participant so
	// the shares still sum exactly.
	SplitEqually bool
}

// AddExpenseResult carries the stored expense plus the payments-vs-total
// warning. A mismatch is reported, never rejected: the stated total is
// allowed to disagree with the payment sum.
type AddExpenseResult struct {
	Expense          *models.Expense
	PaymentsMismatch bool
}

// AddExpense validates and stores a new expense.
func (s *ExpenseService) AddExpense(ctx context.Context, input AddExpenseInput) (*AddExpenseResult, error) {
	slog.Info("AddExpense request received",
		"group_id", input.GroupID,
		"title", input.Title,
		"currency", input.Currency,
		"payments_count", len(input.Payments),
	)

	if _, err := s.store.GetGroup(ctx, input.GroupID); err != nil {
		return nil, err
	}
	if len(input.Payments) == 0 {
		return nil, ErrNoPayments
	}

	roster, err := s.store.ListActiveMembers(ctx, input.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	active := make(map[string]bool, len(roster))
	for _, m := range roster {
		active[m.ID] = true
	}

	paymentsTotal := decimal.Zero
	payments := make([]models.Payment, 0, len(input.Payments))
	for _, p := range input.Payments {
		if !p.Amount.IsPositive() {
			return nil, fmt.Errorf("payment by %s: %w", p.MemberID, ErrAmountNotPositive)
		}
		if !active[p.MemberID] {
			return nil, fmt.Errorf("payer %s: %w", p.MemberID, ErrMemberNotInGroup)
		}
		payments = append(payments, models.Payment{MemberID: p.MemberID, Amount: p.Amount})
		paymentsTotal = paymentsTotal.Add(p.Amount)
	}

	participants, err := s.buildParticipants(input, roster, active, paymentsTotal)
	if err != nil {
		return nil, err
	}

	total := input.Total
	if total.IsZero() {
		total = paymentsTotal
	}

	expense := &models.Expense{
		GroupID:      input.GroupID,
		Title:        input.Title,
		Total:        total,
		Currency:     input.Currency,
		Category:     input.Category,
		Payments:     payments,
		Participants: participants,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to store expense: %w", err)
	}

	mismatch := !paymentsTotal.Equal(total)
	if mismatch {
		slog.Warn("Expense payments do not sum to the stated total",
			"expense_id", expense.ID,
			"total", total,
			"payments_total", paymentsTotal,
		)
	}

	slog.Info("Expense created", "expense_id", expense.ID, "group_id", input.GroupID)
	return &AddExpenseResult{Expense: expense, PaymentsMismatch: mismatch}, nil
}

func (s *ExpenseService) buildParticipants(input AddExpenseInput, roster []models.Member, active map[string]bool, paymentsTotal decimal.Decimal) ([]models.Participant, error) {
	if input.SplitEqually {
		memberIDs := make([]string, 0, len(input.Participants))
		for _, p := range input.Participants {
			memberIDs = append(memberIDs, p.MemberID)
		}
		if len(memberIDs) == 0 {
			for _, m := range roster {
				memberIDs = append(memberIDs, m.ID)
			}
		}
		if len(memberIDs) == 0 {
			return nil, ErrNoParticipants
		}
		for _, id := range memberIDs {
			if !active[id] {
				return nil, fmt.Errorf("participant %s: %w", id, ErrMemberNotInGroup)
			}
		}

		shares := equalShares(paymentsTotal, len(memberIDs), input.Currency.MinorUnits())
		participants := make([]models.Participant, len(memberIDs))
		for i, id := range memberIDs {
			participants[i] = models.Participant{MemberID: id, Share: shares[i]}
		}
		return participants, nil
	}

	if len(input.Participants) == 0 {
		return nil, ErrNoParticipants
	}
	participants := make([]models.Participant, 0, len(input.Participants))
	for _, p := range input.Participants {
		if !p.Share.IsPositive() {
			return nil, fmt.Errorf("share of %s: %w", p.MemberID, ErrAmountNotPositive)
		}
		if !active[p.MemberID] {
			return nil, fmt.Errorf("participant %s: %w", p.MemberID, ErrMemberNotInGroup)
		}
		participants = append(participants, models.Participant{MemberID: p.MemberID, Share: p.Share})
	}
	return participants, nil
}

// equalShares splits total into n shares that sum back to total exactly:
// everyone gets the total divided and rounded down to the currency's minor
// units, and the first share absorbs the remainder.
func equalShares(total decimal.Decimal, n int, minorUnits int32) []decimal.Decimal {
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).RoundDown(minorUnits)

	shares := make([]decimal.Decimal, n)
	rest := decimal.Zero
	for i := 1; i < n; i++ {
		shares[i] = base
		rest = rest.Add(base)
	}
	shares[0] = total.Sub(rest)
	return shares
}

// GetExpense retrieves an expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	return s.store.GetExpense(ctx, expenseID)
}

// ListExpenses retrieves the active expenses for a group.
func (s *ExpenseService) ListExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return s.store.ListActiveExpenses(ctx, groupID)
}

// ArchiveExpense soft-deletes an expense, removing it and its payments and
// participants from future balance computations.
func (s *ExpenseService) ArchiveExpense(ctx context.Context, groupID, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.GroupID != groupID {
		return fmt.Errorf("expense %s does not belong to group %s", expenseID, groupID)
	}

	if err := s.store.ArchiveExpense(ctx, expenseID); err != nil {
		return err
	}

	slog.Info("Expense archived", "expense_id", expenseID, "group_id", groupID)
	return nil
}
