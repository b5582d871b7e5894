package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ShotaYmzk/onme-backend/internal/models"
)

// CreateGroup persists a new group.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_at) VALUES (?, ?, ?)",
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}
	return nil
}

// GetGroup retrieves a group by ID.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("group not found: %s", groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

// ListGroups retrieves all groups, newest first.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM groups ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// AddMember adds a member to a group's roster.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.Status == "" {
		member.Status = models.StatusActive
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO members (id, group_id, name, status, created_at) VALUES (?, ?, ?, ?, ?)",
		member.ID, member.GroupID, member.Name, string(member.Status), member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	return nil
}

// GetMember retrieves a member by ID regardless of status.
func (s *SQLiteStore) GetMember(ctx context.Context, memberID string) (*models.Member, error) {
	member := &models.Member{}
	var status string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, group_id, name, status, created_at FROM members WHERE id = ?",
		memberID,
	).Scan(&member.ID, &member.GroupID, &member.Name, &status, &member.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member not found: %s", memberID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	member.Status = models.Status(status)
	return member, nil
}

// ListActiveMembers retrieves the active roster for a group in insertion
// order. This is the snapshot boundary: archived members never reach the
// ledger.
func (s *SQLiteStore) ListActiveMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, name, status, created_at FROM members WHERE group_id = ? AND status = ? ORDER BY rowid",
		groupID, string(models.StatusActive),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var member models.Member
		var status string
		if err := rows.Scan(&member.ID, &member.GroupID, &member.Name, &status, &member.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		member.Status = models.Status(status)
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}

// ArchiveMember flips a member to archived. Historical expenses keep
// referencing the member so past balances remain computable.
func (s *SQLiteStore) ArchiveMember(ctx context.Context, memberID string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE members SET status = ? WHERE id = ?",
		string(models.StatusArchived), memberID,
	)
	if err != nil {
		return fmt.Errorf("failed to archive member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check archive result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("member not found: %s", memberID)
	}
	return nil
}
