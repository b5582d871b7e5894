package sqlite

import (
	"context"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/money"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	require.NoError(t, err)
	tmpFile.Close()

	store, err := New(tmpFile.Name())
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		os.Remove(tmpFile.Name())
	})
	return store
}

func setupGroup(t *testing.T, store *SQLiteStore, memberNames ...string) (*models.Group, []models.Member) {
	t.Helper()
	ctx := context.Background()

	group := &models.Group{Name: "Kyoto 2026"}
	require.NoError(t, store.CreateGroup(ctx, group))

	for _, name := range memberNames {
		require.NoError(t, store.AddMember(ctx, &models.Member{GroupID: group.ID, Name: name}))
	}

	members, err := store.ListActiveMembers(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, members, len(memberNames))
	return group, members
}

func TestGroupAndMemberRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	group, members := setupGroup(t, store, "Shota", "Yuki", "Ren")

	got, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kyoto 2026", got.Name)
	assert.NotZero(t, got.CreatedAt)

	// Roster keeps insertion order.
	assert.Equal(t, "Shota", members[0].Name)
	assert.Equal(t, models.StatusActive, members[0].Status)

	groups, err := store.ListGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestGetGroupNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.GetGroup(context.Background(), "nope")
	assert.ErrorContains(t, err, "group not found")
}

func TestArchiveMemberExcludedFromActiveRoster(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	group, members := setupGroup(t, store, "Shota", "Yuki")

	require.NoError(t, store.ArchiveMember(ctx, members[1].ID))

	active, err := store.ListActiveMembers(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Shota", active[0].Name)

	// The archived member is still retrievable for history.
	archived, err := store.GetMember(ctx, members[1].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusArchived, archived.Status)
}

func TestExpenseRoundTripKeepsDecimalsExact(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, members := setupGroup(t, store, "Shota", "Yuki", "Ren")

	expense := &models.Expense{
		GroupID:  members[0].GroupID,
		Title:    "Ryokan night 1",
		Total:    decimal.RequireFromString("30000"),
		Currency: money.JPY,
		Category: "lodging",
		Payments: []models.Payment{
			{MemberID: members[0].ID, Amount: decimal.RequireFromString("20000.50")},
			{MemberID: members[1].ID, Amount: decimal.RequireFromString("9999.50")},
		},
		Participants: []models.Participant{
			{MemberID: members[0].ID, Share: decimal.RequireFromString("10000")},
			{MemberID: members[1].ID, Share: decimal.RequireFromString("10000")},
			{MemberID: members[2].ID, Share: decimal.RequireFromString("10000")},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))
	require.NotEmpty(t, expense.ID)

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)

	assert.Equal(t, "Ryokan night 1", got.Title)
	assert.Equal(t, money.JPY, got.Currency)
	assert.Equal(t, models.StatusActive, got.Status)
	require.Len(t, got.Payments, 2)
	require.Len(t, got.Participants, 3)

	// Amounts survive the TEXT round trip exactly.
	assert.True(t, got.Payments[0].Amount.Equal(decimal.RequireFromString("20000.50")))
	assert.True(t, got.PaymentsTotal().Equal(decimal.RequireFromString("30000")))
	assert.True(t, got.SharesTotal().Equal(decimal.RequireFromString("30000")))
}

func TestArchiveExpenseExcludedFromActiveList(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	group, members := setupGroup(t, store, "Shota", "Yuki")

	for _, title := range []string{"Lunch", "Taxi"} {
		require.NoError(t, store.CreateExpense(ctx, &models.Expense{
			GroupID:  group.ID,
			Title:    title,
			Total:    decimal.RequireFromString("1000"),
			Currency: money.JPY,
			Payments: []models.Payment{{MemberID: members[0].ID, Amount: decimal.RequireFromString("1000")}},
			Participants: []models.Participant{
				{MemberID: members[0].ID, Share: decimal.RequireFromString("500")},
				{MemberID: members[1].ID, Share: decimal.RequireFromString("500")},
			},
		}))
	}

	expenses, err := store.ListActiveExpenses(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	require.NoError(t, store.ArchiveExpense(ctx, expenses[0].ID))

	active, err := store.ListActiveExpenses(ctx, group.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Taxi", active[0].Title)
}

func TestSettlementRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	group, members := setupGroup(t, store, "Shota", "Yuki")

	settlement := &models.Settlement{
		GroupID:      group.ID,
		FromMemberID: members[1].ID,
		ToMemberID:   members[0].ID,
		Amount:       decimal.RequireFromString("1500"),
		Currency:     money.JPY,
		Note:         "paid in cash at the station",
		Completed:    true,
	}
	require.NoError(t, store.CreateSettlement(ctx, settlement))

	got, err := store.GetSettlement(ctx, settlement.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("1500")))
	assert.Equal(t, "paid in cash at the station", got.Note)
	assert.True(t, got.Completed)
	assert.NotZero(t, got.SettledAt)

	// Empty note round-trips as empty, not "NULL".
	second := &models.Settlement{
		GroupID:      group.ID,
		FromMemberID: members[1].ID,
		ToMemberID:   members[0].ID,
		Amount:       decimal.RequireFromString("1"),
		Currency:     money.JPY,
		Completed:    true,
	}
	require.NoError(t, store.CreateSettlement(ctx, second))
	gotSecond, err := store.GetSettlement(ctx, second.ID)
	require.NoError(t, err)
	assert.Empty(t, gotSecond.Note)

	history, err := store.ListSettlementsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestUserRoundTrip(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	user := models.NewUser("shota@example.com", "Shota", "hash")
	require.NoError(t, store.CreateUser(ctx, user))

	byEmail, err := store.GetUserByEmail(ctx, "shota@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := store.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shota", byID.Name)

	// Duplicate email rejected by the unique constraint.
	err = store.CreateUser(ctx, models.NewUser("shota@example.com", "Imposter", "hash2"))
	assert.Error(t, err)
}
