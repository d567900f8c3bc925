package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/internal/chat/repository"
	errprocess "workforce_chat_service/pkg/err"
	"workforce_chat_service/pkg/logger"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// GroupUseCase owns chat group membership and lifecycle.
type GroupUseCase struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
}

// NewGroupUseCase init create group use case
func NewGroupUseCase(groupRepo repository.GroupRepository, userRepo repository.UserRepository) *GroupUseCase {
	return &GroupUseCase{
		groupRepo: groupRepo,
		userRepo:  userRepo,
	}
}

// Create builds a custom group. The creator is always a member and the sole
// initial admin.
func (uc *GroupUseCase) Create(ctx context.Context, creatorID, name, description string, members []string) (*domain.ChatGroup, error) {
	group, err := domain.NewChatGroup(name, creatorID, members)
	if err != nil {
		return nil, err
	}
	group.Description = strings.TrimSpace(description)
	if err := uc.groupRepo.Create(ctx, group); err != nil {
		return nil, errprocess.Wrap("create group", err)
	}
	logger.Log.Info("group created",
		zap.String("groupID", group.ID), zap.String("creatorID", creatorID))
	return group, nil
}

// MyGroups lists the caller's active groups, newest first.
func (uc *GroupUseCase) MyGroups(ctx context.Context, userID string) ([]domain.ChatGroup, error) {
	return uc.groupRepo.FindByMember(ctx, userID)
}

// Get returns a group to one of its members.
func (uc *GroupUseCase) Get(ctx context.Context, userID, groupID string) (*domain.ChatGroup, error) {
	group, err := uc.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsMember(userID) {
		return nil, domain.ErrUnauthorized
	}
	return group, nil
}

// AddMembers lets any current member grow the group. Already-present IDs are
// skipped; the returned slice holds only the IDs actually added.
func (uc *GroupUseCase) AddMembers(ctx context.Context, actorID, groupID string, memberIDs []string) (*domain.ChatGroup, []string, error) {
	group, err := uc.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if !group.IsMember(actorID) {
		return nil, nil, domain.ErrUnauthorized
	}
	added := group.AddMembers(memberIDs)
	if len(added) == 0 {
		return group, nil, nil
	}
	if err := uc.groupRepo.Update(ctx, group); err != nil {
		return nil, nil, errprocess.Wrap("add group members", err)
	}
	return group, added, nil
}

// RemoveMember removes a member. Admins may remove anyone; a member may only
// remove themselves.
func (uc *GroupUseCase) RemoveMember(ctx context.Context, actorID, groupID, memberID string) (*domain.ChatGroup, error) {
	group, err := uc.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsAdmin(actorID) && actorID != memberID {
		return nil, domain.ErrUnauthorized
	}
	if !group.IsMember(memberID) {
		return nil, domain.ErrNotFound
	}
	group.RemoveMember(memberID)
	if err := uc.groupRepo.Update(ctx, group); err != nil {
		return nil, errprocess.Wrap("remove group member", err)
	}
	return group, nil
}

// DepartmentGroup returns the caller's department group, materializing it on
// first access from the current department roster. Managers become admins.
func (uc *GroupUseCase) DepartmentGroup(ctx context.Context, userID string) (*domain.ChatGroup, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Department == "" {
		return nil, domain.ErrNotFound
	}

	group, err := uc.groupRepo.FindDepartmentGroup(ctx, user.Department)
	if err == nil {
		return group, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	roster, err := uc.userRepo.FindActiveByDepartment(ctx, user.Department)
	if err != nil {
		return nil, err
	}
	if len(roster) == 0 {
		return nil, domain.ErrNotFound
	}

	members := lo.Map(roster, func(u domain.User, _ int) string { return u.ID })
	managers := lo.FilterMap(roster, func(u domain.User, _ int) (string, bool) {
		return u.ID, u.Role == domain.RoleManager
	})
	createdBy := members[0]
	if len(managers) > 0 {
		createdBy = managers[0]
	}

	group = &domain.ChatGroup{
		ID:          uuid.New().String(),
		Name:        fmt.Sprintf("%s - Équipe", user.Department),
		Description: fmt.Sprintf("Groupe de discussion du département %s", user.Department),
		Type:        domain.GroupDepartment,
		Department:  user.Department,
		Members:     members,
		Admins:      managers,
		CreatedBy:   createdBy,
		IsActive:    true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := uc.groupRepo.Create(ctx, group); err != nil {
		// Lost a materialization race: the winner's group is the real one.
		if existing, findErr := uc.groupRepo.FindDepartmentGroup(ctx, user.Department); findErr == nil {
			return existing, nil
		}
		return nil, errprocess.Wrap("create department group", err)
	}
	logger.Log.Info("department group materialized",
		zap.String("department", user.Department), zap.String("groupID", group.ID))
	return group, nil
}

// Deactivate soft-deletes a group. Admin only.
func (uc *GroupUseCase) Deactivate(ctx context.Context, actorID, groupID string) error {
	group, err := uc.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsAdmin(actorID) {
		return domain.ErrUnauthorized
	}
	return uc.groupRepo.Deactivate(ctx, groupID)
}

// CanAccess reports whether userID may read/publish in groupID's room.
func (uc *GroupUseCase) CanAccess(ctx context.Context, userID, groupID string) (bool, error) {
	group, err := uc.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return group.IsActive && group.IsMember(userID), nil
}
