package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddExpenseSplitEquallyIsExact(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groupID, ids := setupTrip(t, store, "Shota", "Yuki", "Ren")

	expenses := NewExpenseService(store)
	result, err := expenses.AddExpense(ctx, AddExpenseInput{
		GroupID:      groupID,
		Title:        "Taxi",
		Currency:     "USD",
		Payments:     []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.RequireFromString("100")}},
		SplitEqually: true,
	})
	require.NoError(t, err)

	expense := result.Expense
	require.Len(t, expense.Participants, 3)

	// 100 / 3 at two decimal places: 33.34 + 33.33 + 33.33, remainder on
	// the first participant, shares summing back to the total exactly.
	assert.True(t, expense.Participants[0].Share.Equal(decimal.RequireFromString("33.34")))
	assert.True(t, expense.Participants[1].Share.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, expense.Participants[2].Share.Equal(decimal.RequireFromString("33.33")))
	assert.True(t, expense.SharesTotal().Equal(decimal.RequireFromString("100")))
}

func TestAddExpenseSplitEquallyZeroDecimalCurrency(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groupID, ids := setupTrip(t, store, "Shota", "Yuki", "Ren")

	expenses := NewExpenseService(store)
	result, err := expenses.AddExpense(ctx, AddExpenseInput{
		GroupID:      groupID,
		Currency:     "JPY",
		Payments:     []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.RequireFromString("1000")}},
		SplitEqually: true,
	})
	require.NoError(t, err)

	// JPY has no minor units: 334 + 333 + 333.
	expense := result.Expense
	assert.True(t, expense.Participants[0].Share.Equal(decimal.RequireFromString("334")))
	assert.True(t, expense.Participants[1].Share.Equal(decimal.RequireFromString("333")))
	assert.True(t, expense.SharesTotal().Equal(decimal.RequireFromString("1000")))
}

func TestAddExpenseSplitEquallyAmongListed(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groupID, ids := setupTrip(t, store, "Shota", "Yuki", "Ren")

	expenses := NewExpenseService(store)
	result, err := expenses.AddExpense(ctx, AddExpenseInput{
		GroupID:  groupID,
		Currency: "JPY",
		Payments: []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.RequireFromString("1000")}},
		Participants: []ParticipantInput{
			{MemberID: ids["Shota"]},
			{MemberID: ids["Yuki"]},
		},
		SplitEqually: true,
	})
	require.NoError(t, err)

	require.Len(t, result.Expense.Participants, 2)
	assert.True(t, result.Expense.Participants[0].Share.Equal(decimal.RequireFromString("500")))
}

func TestAddExpenseReportsPaymentsMismatch(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groupID, ids := setupTrip(t, store, "Shota", "Yuki")

	expenses := NewExpenseService(store)
	result, err := expenses.AddExpense(ctx, AddExpenseInput{
		GroupID:      groupID,
		Total:        decimal.RequireFromString("5000"),
		Currency:     "JPY",
		Payments:     []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.RequireFromString("4800")}},
		SplitEqually: true,
	})
	require.NoError(t, err)

	// The mismatch is surfaced, not rejected.
	assert.True(t, result.PaymentsMismatch)
	assert.True(t, result.Expense.Total.Equal(decimal.RequireFromString("5000")))
}

func TestAddExpenseDefaultsTotalToPayments(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groupID, ids := setupTrip(t, store, "Shota", "Yuki")

	expenses := NewExpenseService(store)
	result, err := expenses.AddExpense(ctx, AddExpenseInput{
		GroupID:  groupID,
		Currency: "JPY",
		Payments: []PaymentInput{
			{MemberID: ids["Shota"], Amount: decimal.RequireFromString("800")},
			{MemberID: ids["Yuki"], Amount: decimal.RequireFromString("200")},
		},
		SplitEqually: true,
	})
	require.NoError(t, err)

	assert.False(t, result.PaymentsMismatch)
	assert.True(t, result.Expense.Total.Equal(decimal.RequireFromString("1000")))
}

func TestAddExpenseValidation(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groupID, ids := setupTrip(t, store, "Shota", "Yuki")
	_, otherIDs := setupTrip(t, store, "Ren")

	expenses := NewExpenseService(store)

	tests := []struct {
		name    string
		input   AddExpenseInput
		wantErr error
	}{
		{
			name:    "no payments",
			input:   AddExpenseInput{GroupID: groupID, Currency: "JPY", SplitEqually: true},
			wantErr: ErrNoPayments,
		},
		{
			name: "non-positive payment",
			input: AddExpenseInput{
				GroupID:      groupID,
				Currency:     "JPY",
				Payments:     []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.Zero}},
				SplitEqually: true,
			},
			wantErr: ErrAmountNotPositive,
		},
		{
			name: "payer from another group",
			input: AddExpenseInput{
				GroupID:      groupID,
				Currency:     "JPY",
				Payments:     []PaymentInput{{MemberID: otherIDs["Ren"], Amount: decimal.RequireFromString("100")}},
				SplitEqually: true,
			},
			wantErr: ErrMemberNotInGroup,
		},
		{
			name: "explicit split without participants",
			input: AddExpenseInput{
				GroupID:  groupID,
				Currency: "JPY",
				Payments: []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.RequireFromString("100")}},
			},
			wantErr: ErrNoParticipants,
		},
		{
			name: "non-positive share",
			input: AddExpenseInput{
				GroupID:      groupID,
				Currency:     "JPY",
				Payments:     []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.RequireFromString("100")}},
				Participants: []ParticipantInput{{MemberID: ids["Yuki"], Share: decimal.Zero}},
			},
			wantErr: ErrAmountNotPositive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expenses.AddExpense(ctx, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestArchiveExpenseChecksOwnership(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	groupID, ids := setupTrip(t, store, "Shota", "Yuki")
	otherGroupID, _ := setupTrip(t, store, "Ren")

	expenses := NewExpenseService(store)
	result, err := expenses.AddExpense(ctx, AddExpenseInput{
		GroupID:      groupID,
		Currency:     "JPY",
		Payments:     []PaymentInput{{MemberID: ids["Shota"], Amount: decimal.RequireFromString("100")}},
		SplitEqually: true,
	})
	require.NoError(t, err)

	assert.Error(t, expenses.ArchiveExpense(ctx, otherGroupID, result.Expense.ID))
	require.NoError(t, expenses.ArchiveExpense(ctx, groupID, result.Expense.ID))

	listed, err := expenses.ListExpenses(ctx, groupID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
