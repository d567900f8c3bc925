package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// MaxGroupNameLength group name length bound
const MaxGroupNameLength = 100

// GroupType custom group or department-derived group
type GroupType string

const (
	// GroupCustom explicitly created group, needs at least two members
	GroupCustom GroupType = "custom"
	// GroupDepartment group lazily materialized from a department roster
	GroupDepartment GroupType = "department"
)

// ChatGroup a named set of members sharing a group room. Groups are never
// hard-deleted, only deactivated.
type ChatGroup struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Type        GroupType `bson:"type" json:"type"`
	Department  string    `bson:"department,omitempty" json:"department,omitempty"`
	Members     []string  `bson:"members" json:"members"`
	Admins      []string  `bson:"admins,omitempty" json:"admins,omitempty"`
	CreatedBy   string    `bson:"created_by" json:"createdBy"`
	IsActive    bool      `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// NewChatGroup builds a custom group. The creator is always a member and an
// admin; duplicate member ids are collapsed. Custom groups require at least
// two distinct members.
func NewChatGroup(name, createdBy string, members []string) (*ChatGroup, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxGroupNameLength || createdBy == "" {
		return nil, ErrValidation
	}

	members = lo.Uniq(append(members, createdBy))
	if len(members) < 2 {
		return nil, ErrValidation
	}

	return &ChatGroup{
		ID:        uuid.New().String(),
		Name:      name,
		Type:      GroupCustom,
		Members:   members,
		Admins:    []string{createdBy},
		CreatedBy: createdBy,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsMember reports whether userID belongs to the group.
func (g *ChatGroup) IsMember(userID string) bool {
	return lo.Contains(g.Members, userID)
}

// IsAdmin reports whether userID administrates the group.
func (g *ChatGroup) IsAdmin(userID string) bool {
	return lo.Contains(g.Admins, userID)
}

// AddMembers appends new member ids, skipping ones already present. Returns
// the ids actually added.
func (g *ChatGroup) AddMembers(userIDs []string) []string {
	added := lo.Filter(lo.Uniq(userIDs), func(id string, _ int) bool {
		return id != "" && !g.IsMember(id)
	})
	g.Members = append(g.Members, added...)
	return added
}

// RemoveMember drops userID from members and admins. Department groups keep
// their roster mirror intact elsewhere; this only edits the group document.
func (g *ChatGroup) RemoveMember(userID string) {
	g.Members = lo.Filter(g.Members, func(id string, _ int) bool { return id != userID })
	g.Admins = lo.Filter(g.Admins, func(id string, _ int) bool { return id != userID })
}
