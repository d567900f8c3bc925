package app

import (
	"context"
	"testing"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newNotificationUseCaseForTest() (*NotificationUseCase, *MockNotificationRepository, *MockUserRepository, *MockPubSub) {
	notifRepo := new(MockNotificationRepository)
	userRepo := new(MockUserRepository)
	bus := new(MockPubSub)
	return NewNotificationUseCase(notifRepo, userRepo, bus), notifRepo, userRepo, bus
}

func TestNotificationUseCase_Send(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	t.Run("explicit targets get stored and pushed", func(t *testing.T) {
		uc, notifRepo, _, bus := newNotificationUseCaseForTest()

		notifRepo.On("Insert", ctx, mock.Anything).Return(nil)
		bus.On("Publish", "chat:user:bob", eventNamed(domain.EventNotification)).Return(nil)
		bus.On("Publish", "chat:user:carol", eventNamed(domain.EventNotification)).Return(nil)

		n, err := uc.Send(ctx, "admin1", "Maintenance", "Offices closed Friday", []string{"bob", "carol"})
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"bob", "carol"}, n.TargetUsers)
		bus.AssertExpectations(t)
	})

	t.Run("empty targets broadcast to all active users except the sender", func(t *testing.T) {
		uc, notifRepo, userRepo, bus := newNotificationUseCaseForTest()

		userRepo.On("FindActiveIDs", ctx, "admin1").Return([]string{"bob", "carol"}, nil)
		notifRepo.On("Insert", ctx, mock.Anything).Return(nil)
		bus.On("Publish", mock.Anything, eventNamed(domain.EventNotification)).Return(nil)

		n, err := uc.Send(ctx, "admin1", "All hands", "Meeting at 10", nil)
		assert.NoError(t, err)
		assert.ElementsMatch(t, []string{"bob", "carol"}, n.TargetUsers)
		bus.AssertNumberOfCalls(t, "Publish", 2)
	})

	t.Run("blank title is rejected before any store call", func(t *testing.T) {
		uc, notifRepo, _, _ := newNotificationUseCaseForTest()

		_, err := uc.Send(ctx, "admin1", "  ", "body", []string{"bob"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		notifRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("push failure keeps the stored notification", func(t *testing.T) {
		uc, notifRepo, _, bus := newNotificationUseCaseForTest()

		notifRepo.On("Insert", ctx, mock.Anything).Return(nil)
		bus.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError)

		n, err := uc.Send(ctx, "admin1", "Maintenance", "body", []string{"bob"})
		assert.NoError(t, err)
		assert.NotNil(t, n)
	})
}

func TestNotificationUseCase_MarkRead(t *testing.T) {
	ctx := context.Background()
	logger.SetNewNop()

	uc, notifRepo, _, _ := newNotificationUseCaseForTest()
	notifRepo.On("MarkRead", ctx, "n1", "bob").Return(nil)

	assert.NoError(t, uc.MarkRead(ctx, "n1", "bob"))
	notifRepo.AssertExpectations(t)
}
