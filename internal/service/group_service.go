package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ShotaYmzk/onme-backend/internal/models"
	"github.com/ShotaYmzk/onme-backend/internal/storage"
)

// GroupService manages groups and their rosters.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group with an initial roster.
func (s *GroupService) CreateGroup(ctx context.Context, name string, memberNames []string) (*models.Group, []models.Member, error) {
	slog.Info("CreateGroup request received", "name", name, "members_count", len(memberNames))

	group := &models.Group{Name: name}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, nil, fmt.Errorf("failed to create group: %w", err)
	}

	for _, memberName := range memberNames {
		member := &models.Member{GroupID: group.ID, Name: memberName}
		if err := s.store.AddMember(ctx, member); err != nil {
			return nil, nil, fmt.Errorf("failed to add member %q: %w", memberName, err)
		}
	}

	members, err := s.store.ListActiveMembers(ctx, group.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return group, members, nil
}

// GetGroup retrieves a group with its active roster.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, []models.Member, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	members, err := s.store.ListActiveMembers(ctx, groupID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list members: %w", err)
	}
	return group, members, nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// AddMember adds a member to an existing group.
func (s *GroupService) AddMember(ctx context.Context, groupID, name string) (*models.Member, error) {
	if _, err := s.store.GetGroup(ctx, groupID); err != nil {
		return nil, err
	}

	member := &models.Member{GroupID: groupID, Name: name}
	if err := s.store.AddMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	slog.Info("Member added", "group_id", groupID, "member_id", member.ID)
	return member, nil
}

// ArchiveMember soft-deletes a member. Expenses referencing the member are
// untouched, so historical balances remain computable.
func (s *GroupService) ArchiveMember(ctx context.Context, groupID, memberID string) error {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return err
	}
	if member.GroupID != groupID {
		return ErrMemberNotInGroup
	}

	if err := s.store.ArchiveMember(ctx, memberID); err != nil {
		return err
	}

	slog.Info("Member archived", "group_id", groupID, "member_id", memberID)
	return nil
}
