package app

import (
	"context"
	"testing"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newMessageUseCaseForTest() (*MessageUseCase, *MockMessageRepository, *MockGroupRepository, *MockUserRepository, *MockPubSub, *Registry) {
	msgRepo := new(MockMessageRepository)
	groupRepo := new(MockGroupRepository)
	userRepo := new(MockUserRepository)
	bus := new(MockPubSub)
	registry := NewRegistry()
	uc := NewMessageUseCase(msgRepo, groupRepo, userRepo, bus, registry)
	return uc, msgRepo, groupRepo, userRepo, bus, registry
}

func eventNamed(name string) interface{} {
	return mock.MatchedBy(func(e domain.WSEvent) bool { return e.Event == name })
}

func TestMessageUseCase_Send(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("direct message to offline recipient stays sent", func(t *testing.T) {
		uc, msgRepo, _, userRepo, bus, _ := newMessageUseCaseForTest()

		userRepo.On("FindByID", ctx, "bob").Return(&domain.User{ID: "bob", Active: true}, nil)
		msgRepo.On("Insert", ctx, mock.Anything).Return(nil)
		bus.On("Publish", "chat:user:bob", eventNamed(domain.EventReceiveMessage)).Return(nil)

		msg, err := uc.Send(ctx, "alice", domain.Destination{ReceiverID: "bob"}, "hello")
		assert.NoError(t, err)
		assert.Equal(t, "alice", msg.SenderID)
		assert.Equal(t, "bob", msg.ReceiverID)
		assert.Equal(t, domain.KindDirect, msg.Kind)
		assert.Equal(t, domain.StatusSent, msg.Status)
		msgRepo.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("direct message to online recipient advances to delivered", func(t *testing.T) {
		uc, msgRepo, _, userRepo, bus, registry := newMessageUseCaseForTest()
		registry.Register("bob", NewSession("bob", nil))

		userRepo.On("FindByID", ctx, "bob").Return(&domain.User{ID: "bob", Active: true}, nil)
		msgRepo.On("Insert", ctx, mock.Anything).Return(nil)
		msgRepo.On("UpdateStatus", ctx, mock.Anything, domain.StatusDelivered).
			Return(&domain.Message{ID: "m1", SenderID: "alice", Status: domain.StatusDelivered}, nil)
		bus.On("Publish", "chat:user:bob", eventNamed(domain.EventReceiveMessage)).Return(nil)
		bus.On("Publish", "chat:user:alice", eventNamed(domain.EventMessageStatusUpdate)).Return(nil)

		msg, err := uc.Send(ctx, "alice", domain.Destination{ReceiverID: "bob"}, "hello")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusDelivered, msg.Status)
		msgRepo.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("group message dispatches to the group room", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, bus, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"alice", "bob"}, IsActive: true,
		}, nil)
		msgRepo.On("Insert", ctx, mock.Anything).Return(nil)
		bus.On("Publish", "chat:group:g1", eventNamed(domain.EventReceiveMessage)).Return(nil)

		msg, err := uc.Send(ctx, "alice", domain.Destination{GroupID: "g1"}, "hello all")
		assert.NoError(t, err)
		assert.Equal(t, domain.KindGroup, msg.Kind)
		assert.Equal(t, domain.StatusSent, msg.Status)
		msgRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty content is rejected before any store call", func(t *testing.T) {
		uc, msgRepo, _, _, _, _ := newMessageUseCaseForTest()

		_, err := uc.Send(ctx, "alice", domain.Destination{ReceiverID: "bob"}, "   ")
		assert.ErrorIs(t, err, domain.ErrValidation)
		msgRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("both receiver and group is rejected", func(t *testing.T) {
		uc, _, _, _, _, _ := newMessageUseCaseForTest()

		_, err := uc.Send(ctx, "alice", domain.Destination{ReceiverID: "bob", GroupID: "g1"}, "hi")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("inactive recipient is an invalid destination", func(t *testing.T) {
		uc, msgRepo, _, userRepo, _, _ := newMessageUseCaseForTest()

		userRepo.On("FindByID", ctx, "bob").Return(&domain.User{ID: "bob", Active: false}, nil)

		_, err := uc.Send(ctx, "alice", domain.Destination{ReceiverID: "bob"}, "hello")
		assert.ErrorIs(t, err, domain.ErrInvalidDestination)
		msgRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("unknown recipient is an invalid destination", func(t *testing.T) {
		uc, _, _, userRepo, _, _ := newMessageUseCaseForTest()

		userRepo.On("FindByID", ctx, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.Send(ctx, "alice", domain.Destination{ReceiverID: "ghost"}, "hello")
		assert.ErrorIs(t, err, domain.ErrInvalidDestination)
	})

	t.Run("non-member cannot send to a group", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"bob", "carol"}, IsActive: true,
		}, nil)

		_, err := uc.Send(ctx, "alice", domain.Destination{GroupID: "g1"}, "hello")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		msgRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("deactivated group is an invalid destination", func(t *testing.T) {
		uc, _, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"alice"}, IsActive: false,
		}, nil)

		_, err := uc.Send(ctx, "alice", domain.Destination{GroupID: "g1"}, "hello")
		assert.ErrorIs(t, err, domain.ErrInvalidDestination)
	})

	t.Run("broadcast failure does not lose the message", func(t *testing.T) {
		uc, msgRepo, _, userRepo, bus, _ := newMessageUseCaseForTest()

		userRepo.On("FindByID", ctx, "bob").Return(&domain.User{ID: "bob", Active: true}, nil)
		msgRepo.On("Insert", ctx, mock.Anything).Return(nil)
		bus.On("Publish", "chat:user:bob", mock.Anything).Return(assert.AnError)

		msg, err := uc.Send(ctx, "alice", domain.Destination{ReceiverID: "bob"}, "hello")
		assert.NoError(t, err)
		assert.NotNil(t, msg)
		assert.Equal(t, domain.StatusSent, msg.Status)
	})
}

func TestMessageUseCase_History(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("default page size applies when limit is unset", func(t *testing.T) {
		uc, msgRepo, _, _, _, _ := newMessageUseCaseForTest()

		filter := domain.HistoryFilter{UserID: "alice", CounterpartID: "bob"}
		msgRepo.On("History", ctx, filter, int64(DefaultHistoryLimit), int64(0)).
			Return([]domain.Message{}, nil)

		_, err := uc.History(ctx, filter, 0, -5)
		assert.NoError(t, err)
		msgRepo.AssertExpectations(t)
	})

	t.Run("group history requires membership", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"bob"}, IsActive: true,
		}, nil)

		_, err := uc.History(ctx, domain.HistoryFilter{UserID: "alice", GroupID: "g1"}, 10, 0)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		msgRepo.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("deactivated group history is frozen for members too", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"alice"}, IsActive: false,
		}, nil)

		_, err := uc.History(ctx, domain.HistoryFilter{UserID: "alice", GroupID: "g1"}, 10, 0)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		msgRepo.AssertNotCalled(t, "History", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMessageUseCase_MarkConversationRead(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("direct conversation scope", func(t *testing.T) {
		uc, msgRepo, _, _, _, _ := newMessageUseCaseForTest()

		msgRepo.On("MarkRead", ctx, domain.ReadScope{ReaderID: "alice", CounterpartID: "bob"}).
			Return(int64(3), nil)

		modified, err := uc.MarkConversationRead(ctx, "alice", "bob", false)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), modified)
	})

	t.Run("group conversation scope requires membership", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"alice", "bob"}, IsActive: true,
		}, nil)
		msgRepo.On("MarkRead", ctx, domain.ReadScope{ReaderID: "alice", GroupID: "g1"}).
			Return(int64(0), nil)

		modified, err := uc.MarkConversationRead(ctx, "alice", "g1", true)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), modified)
	})

	t.Run("non-member cannot bulk-read a group conversation", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"alice", "bob"}, IsActive: true,
		}, nil)

		_, err := uc.MarkConversationRead(ctx, "mallory", "g1", true)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		msgRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})

	t.Run("deactivated group cannot be bulk-read", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"alice"}, IsActive: false,
		}, nil)

		_, err := uc.MarkConversationRead(ctx, "alice", "g1", true)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		msgRepo.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	})
}

func TestMessageUseCase_MarkMessageRead(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	direct := &domain.Message{
		ID: "m1", SenderID: "alice", ReceiverID: "bob",
		Kind: domain.KindDirect, Status: domain.StatusSent,
	}

	t.Run("recipient read advances the message and notifies the sender", func(t *testing.T) {
		uc, msgRepo, _, _, bus, _ := newMessageUseCaseForTest()

		read := &domain.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob",
			Kind: domain.KindDirect, Status: domain.StatusRead}
		msgRepo.On("FindByID", ctx, "m1").Return(direct, nil)
		msgRepo.On("UpdateStatus", ctx, "m1", domain.StatusRead).Return(read, nil)
		bus.On("Publish", "chat:user:alice", eventNamed(domain.EventMessageStatusUpdate)).Return(nil)

		updated, err := uc.MarkMessageRead(ctx, "m1", "bob")
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusRead, updated.Status)
		bus.AssertExpectations(t)
	})

	t.Run("sender cannot read-receipt their own message", func(t *testing.T) {
		uc, msgRepo, _, _, _, _ := newMessageUseCaseForTest()

		msgRepo.On("FindByID", ctx, "m1").Return(direct, nil)

		_, err := uc.MarkMessageRead(ctx, "m1", "alice")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("a third party cannot read-receipt a direct message", func(t *testing.T) {
		uc, msgRepo, _, _, _, _ := newMessageUseCaseForTest()

		msgRepo.On("FindByID", ctx, "m1").Return(direct, nil)

		_, err := uc.MarkMessageRead(ctx, "m1", "mallory")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("group read receipt requires membership", func(t *testing.T) {
		uc, msgRepo, groupRepo, _, _, _ := newMessageUseCaseForTest()

		groupMsg := &domain.Message{ID: "m2", SenderID: "alice", GroupID: "g1",
			Kind: domain.KindGroup, Status: domain.StatusSent}
		msgRepo.On("FindByID", ctx, "m2").Return(groupMsg, nil)
		groupRepo.On("FindByID", ctx, "g1").Return(&domain.ChatGroup{
			ID: "g1", Members: []string{"alice", "bob"}, IsActive: true,
		}, nil)

		_, err := uc.MarkMessageRead(ctx, "m2", "mallory")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
