package app

import (
	"context"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/internal/chat/repository"
	errprocess "workforce_chat_service/pkg/err"
	"workforce_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// NotificationUseCase persists workforce notifications and pushes them to
// each target's personal room.
type NotificationUseCase struct {
	notifRepo repository.NotificationRepository
	userRepo  repository.UserRepository
	bus       repository.PubSub
}

// NewNotificationUseCase init create notification use case
func NewNotificationUseCase(
	notifRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	bus repository.PubSub,
) *NotificationUseCase {
	return &NotificationUseCase{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		bus:       bus,
	}
}

// Send stores a notification and pushes it to every target's personal room.
// An empty target list means every active user except the sender. Persist
// first, push after: a bus hiccup loses the push, never the notification.
func (uc *NotificationUseCase) Send(ctx context.Context, senderID, title, message string, targets []string) (*domain.Notification, error) {
	if len(targets) == 0 {
		ids, err := uc.userRepo.FindActiveIDs(ctx, senderID)
		if err != nil {
			return nil, errprocess.Wrap("resolve notification targets", err)
		}
		targets = ids
	}

	n, err := domain.NewNotification(senderID, title, message, targets)
	if err != nil {
		return nil, err
	}
	if err := uc.notifRepo.Insert(ctx, n); err != nil {
		return nil, errprocess.Wrap("insert notification", err)
	}

	event := n.Event()
	for _, target := range n.TargetUsers {
		if err := uc.bus.Publish(domain.PersonalRoom(target).Channel(), event); err != nil {
			logger.Log.Error("notification push failed",
				zap.String("notificationID", n.ID), zap.String("targetID", target), zap.Error(err))
		}
	}

	logger.Log.Info("notification sent",
		zap.String("notificationID", n.ID), zap.Int("targets", len(n.TargetUsers)))
	return n, nil
}

// List returns the notifications addressed to userID, newest first.
func (uc *NotificationUseCase) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return uc.notifRepo.FindByTarget(ctx, userID)
}

// MarkRead records userID's read of a notification. Idempotent.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, notificationID, userID string) error {
	return uc.notifRepo.MarkRead(ctx, notificationID, userID)
}
