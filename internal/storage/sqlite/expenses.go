package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/money"
)

// CreateExpense persists an expense with its payments and participants in
// one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.Status == "" {
		expense.Status = models.StatusActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, group_id, title, total, currency, category, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, expense.GroupID, expense.Title, expense.Total.String(),
		string(expense.Currency), expense.Category, string(expense.Status), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range expense.Payments {
		payment := &expense.Payments[i]
		if payment.ID == "" {
			payment.ID = uuid.New().String()
		}
		payment.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO payments (id, expense_id, member_id, amount) VALUES (?, ?, ?, ?)",
			payment.ID, payment.ExpenseID, payment.MemberID, payment.Amount.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
	}

	for i := range expense.Participants {
		participant := &expense.Participants[i]
		participant.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			"INSERT INTO participants (expense_id, member_id, share) VALUES (?, ?, ?)",
			participant.ExpenseID, participant.MemberID, participant.Share.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including payments and participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.scanExpenseRow(s.db.QueryRowContext(ctx,
		"SELECT id, group_id, title, total, currency, category, status, created_at FROM expenses WHERE id = ?",
		expenseID,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, err
	}
	if err := s.loadExpenseDetails(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListActiveExpenses retrieves the active expenses for a group, oldest
// first, with payments and participants loaded. This is the snapshot
// boundary: archived expenses are excluded here, payments and participants
// included, so the ledger never re-checks status.
func (s *SQLiteStore) ListActiveExpenses(ctx context.Context, groupID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, title, total, currency, category, status, created_at FROM expenses WHERE group_id = ? AND status = ? ORDER BY created_at, id",
		groupID, string(models.StatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		expense, err := s.scanExpenseRow(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for i := range expenses {
		if err := s.loadExpenseDetails(ctx, &expenses[i]); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

// ArchiveExpense flips an expense to archived, excluding it and its
// payments and participants from every future balance computation.
func (s *SQLiteStore) ArchiveExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET status = ? WHERE id = ?",
		string(models.StatusArchived), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check archive result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense not found: %s", expenseID)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanExpenseRow(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var total, currency, status string
	err := row.Scan(&expense.ID, &expense.GroupID, &expense.Title, &total, &currency, &expense.Category, &status, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	expense.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("corrupt expense total %q: %w", total, err)
	}
	expense.Currency = money.Currency(currency)
	expense.Status = models.Status(status)
	return expense, nil
}

func (s *SQLiteStore) loadExpenseDetails(ctx context.Context, expense *models.Expense) error {
	payRows, err := s.db.QueryContext(ctx,
		"SELECT id, expense_id, member_id, amount FROM payments WHERE expense_id = ? ORDER BY rowid",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var payment models.Payment
		var amount string
		if err := payRows.Scan(&payment.ID, &payment.ExpenseID, &payment.MemberID, &amount); err != nil {
			return fmt.Errorf("failed to scan payment: %w", err)
		}
		payment.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("corrupt payment amount %q: %w", amount, err)
		}
		expense.Payments = append(expense.Payments, payment)
	}
	if err := payRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate payments: %w", err)
	}

	partRows, err := s.db.QueryContext(ctx,
		"SELECT expense_id, member_id, share FROM participants WHERE expense_id = ? ORDER BY member_id",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var participant models.Participant
		var share string
		if err := partRows.Scan(&participant.ExpenseID, &participant.MemberID, &share); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		participant.Share, err = decimal.NewFromString(share)
		if err != nil {
			return fmt.Errorf("corrupt participant share %q: %w", share, err)
		}
		expense.Participants = append(expense.Participants, participant)
	}
	if err := partRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}
