package unit

import (
	"testing"

	"workforce_chat_service/internal/chat/domain"

	"github.com/stretchr/testify/assert"
)

func TestNewChatGroup(t *testing.T) {
	t.Run("creator is deduplicated into members and admins", func(t *testing.T) {
		group, err := domain.NewChatGroup("Project X", "alice", []string{"bob", "alice", "bob"})
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"alice", "bob"}, group.Members)
		assert.Equal(t, []string{"alice"}, group.Admins)
		assert.Equal(t, domain.GroupCustom, group.Type)
		assert.True(t, group.IsActive)
	})

	t.Run("name is required and bounded", func(t *testing.T) {
		_, err := domain.NewChatGroup("   ", "alice", []string{"bob"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("a single member is not a group", func(t *testing.T) {
		_, err := domain.NewChatGroup("Solo", "alice", nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestChatGroupMembership(t *testing.T) {
	group, _ := domain.NewChatGroup("Project X", "alice", []string{"bob"})

	added := group.AddMembers([]string{"carol", "bob", ""})
	assert.Equal(t, []string{"carol"}, added)

	group.RemoveMember("alice")
	assert.False(t, group.IsMember("alice"))
	assert.False(t, group.IsAdmin("alice"), "admin role falls away with membership")
	assert.True(t, group.IsMember("carol"))
}

func TestNewNotification(t *testing.T) {
	t.Run("duplicate and empty targets collapse", func(t *testing.T) {
		n, err := domain.NewNotification("admin1", "Title", "Body", []string{"bob", "", "bob", "carol"})
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"bob", "carol"}, n.TargetUsers)
		assert.False(t, n.IsReadBy("bob"))
	})

	t.Run("no resolvable target is rejected", func(t *testing.T) {
		_, err := domain.NewNotification("admin1", "Title", "Body", []string{""})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
