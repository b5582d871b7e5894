// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/ShotaYmzk/onme-backend/internal/models"
)

// Store defines the persistence operations for groups, rosters, expenses,
// users and settlements. The interface keeps the service layer independent
// of the backend (SQLite today, anything else tomorrow).
//
// List operations suffixed Active return only records with
// models.StatusActive, so ledger computations downstream never see
// archived records. Archive operations flip the status; nothing is ever
// physically deleted.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Groups
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// Members
	AddMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, memberID string) (*models.Member, error)
	ListActiveMembers(ctx context.Context, groupID string) ([]models.Member, error)
	ArchiveMember(ctx context.Context, memberID string) error

	// Expenses. CreateExpense persists the expense with its payments and
	// participants in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	ListActiveExpenses(ctx context.Context, groupID string) ([]models.Expense, error)
	ArchiveExpense(ctx context.Context, expenseID string) error

	// Settlements. Append-only; recorded settlements are immutable.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
