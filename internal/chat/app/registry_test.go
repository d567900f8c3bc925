package app

import (
	"context"
	"testing"

	"workforce_chat_service/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestRegistry(t *testing.T) {
	logger.SetNewNop()

	t.Run("register and lookup", func(t *testing.T) {
		registry := NewRegistry()
		session := NewSession("alice", nil)

		evicted := registry.Register("alice", session)
		assert.Nil(t, evicted)

		got, ok := registry.Lookup("alice")
		assert.True(t, ok)
		assert.Equal(t, session.ID, got.ID)
	})

	t.Run("second registration evicts the first", func(t *testing.T) {
		registry := NewRegistry()
		first := NewSession("alice", nil)
		second := NewSession("alice", nil)

		registry.Register("alice", first)
		evicted := registry.Register("alice", second)
		assert.Equal(t, first.ID, evicted.ID)

		got, _ := registry.Lookup("alice")
		assert.Equal(t, second.ID, got.ID)
	})

	t.Run("unregister only removes the matching session", func(t *testing.T) {
		registry := NewRegistry()
		stale := NewSession("alice", nil)
		live := NewSession("alice", nil)

		registry.Register("alice", stale)
		registry.Register("alice", live)

		// The evicted session's teardown must not knock out the live one.
		assert.False(t, registry.Unregister(stale.ID))
		_, ok := registry.Lookup("alice")
		assert.True(t, ok)

		assert.True(t, registry.Unregister(live.ID))
		_, ok = registry.Lookup("alice")
		assert.False(t, ok)
	})

	t.Run("unregister is idempotent", func(t *testing.T) {
		registry := NewRegistry()
		session := NewSession("alice", nil)
		registry.Register("alice", session)

		assert.True(t, registry.Unregister(session.ID))
		assert.False(t, registry.Unregister(session.ID))
	})

	t.Run("online snapshots registered users", func(t *testing.T) {
		registry := NewRegistry()
		registry.Register("alice", NewSession("alice", nil))
		registry.Register("bob", NewSession("bob", nil))

		online := registry.Online()
		assert.ElementsMatch(t, []string{"alice", "bob"}, online)
	})
}

func TestSessionRooms(t *testing.T) {
	logger.SetNewNop()

	t.Run("track and drop cancels the subscription", func(t *testing.T) {
		session := NewSession("alice", nil)
		ctx, cancel := context.WithCancel(context.Background())

		assert.True(t, session.trackRoom("chat:group:g1", cancel))
		assert.False(t, session.trackRoom("chat:group:g1", cancel), "double join must not re-subscribe")

		assert.True(t, session.dropRoom("chat:group:g1"))
		assert.Error(t, ctx.Err(), "drop must cancel the subscription context")
		assert.False(t, session.dropRoom("chat:group:g1"))
	})

	t.Run("close rooms cancels everything", func(t *testing.T) {
		session := NewSession("alice", nil)
		ctx1, cancel1 := context.WithCancel(context.Background())
		ctx2, cancel2 := context.WithCancel(context.Background())
		session.trackRoom("chat:user:alice", cancel1)
		session.trackRoom("chat:group:g1", cancel2)

		session.CloseRooms()
		assert.Error(t, ctx1.Err())
		assert.Error(t, ctx2.Err())
	})

	t.Run("authenticate happens once", func(t *testing.T) {
		session := NewSession("alice", nil)
		assert.False(t, session.Authenticated())
		assert.True(t, session.setAuthenticated())
		assert.False(t, session.setAuthenticated())
		assert.True(t, session.Authenticated())
	})
}
