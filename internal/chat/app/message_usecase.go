package app

import (
	"context"
	"errors"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/internal/chat/repository"
	"workforce_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// DefaultHistoryLimit page size when the caller does not ask for one
const DefaultHistoryLimit = 50

// MessageUseCase the message lifecycle: validate, persist, dispatch to the
// destination room, advance delivery status. Shared by the socket handler
// and the REST path so both obey the same store contract.
type MessageUseCase struct {
	msgRepo   repository.MessageRepository
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	bus       repository.PubSub
	registry  *Registry
}

// NewMessageUseCase init create message use case
func NewMessageUseCase(
	msgRepo repository.MessageRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	bus repository.PubSub,
	registry *Registry,
) *MessageUseCase {
	return &MessageUseCase{
		msgRepo:   msgRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		bus:       bus,
		registry:  registry,
	}
}

// Send validates, persists and dispatches a message. The room broadcast only
// happens after persistence succeeded; a store failure reaches the sender
// and nobody else.
func (uc *MessageUseCase) Send(ctx context.Context, senderID string, dest domain.Destination, content string) (*domain.Message, error) {
	msg, err := domain.NewMessage(senderID, dest, content)
	if err != nil {
		return nil, err
	}

	if err := uc.resolveDestination(ctx, senderID, dest); err != nil {
		return nil, err
	}

	if err := uc.msgRepo.Insert(ctx, msg); err != nil {
		return nil, err
	}

	room := domain.RoomFor(dest)
	if err := uc.bus.Publish(room.Channel(), domain.MessageEvent(domain.EventReceiveMessage, msg)); err != nil {
		// Message is durable; the recipient catches up over the history
		// endpoint on the next fetch.
		logger.Log.Errorf("publish receiveMessage error:", err, zap.String("messageID", msg.ID))
		return msg, nil
	}

	if msg.Kind == domain.KindDirect {
		uc.advanceDelivered(ctx, msg)
	}

	return msg, nil
}

// resolveDestination checks the destination is reachable: an active user for
// direct messages, an active group the sender belongs to for group messages.
func (uc *MessageUseCase) resolveDestination(ctx context.Context, senderID string, dest domain.Destination) error {
	if dest.GroupID != "" {
		group, err := uc.groupRepo.FindByID(ctx, dest.GroupID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrInvalidDestination
			}
			return err
		}
		if !group.IsActive {
			return domain.ErrInvalidDestination
		}
		if !group.IsMember(senderID) {
			return domain.ErrUnauthorized
		}
		return nil
	}

	user, err := uc.userRepo.FindByID(ctx, dest.ReceiverID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidDestination
		}
		return err
	}
	if !user.Active {
		return domain.ErrInvalidDestination
	}
	return nil
}

// advanceDelivered moves a direct message to delivered when the recipient
// holds a registered session right now, and tells the sender. The registry
// is process-local, so on another instance the message simply stays sent
// until the recipient reads it.
func (uc *MessageUseCase) advanceDelivered(ctx context.Context, msg *domain.Message) {
	if _, ok := uc.registry.Lookup(msg.ReceiverID); !ok {
		return
	}

	updated, err := uc.msgRepo.UpdateStatus(ctx, msg.ID, domain.StatusDelivered)
	if err != nil {
		logger.Log.Errorf("advance delivered error:", err, zap.String("messageID", msg.ID))
		return
	}
	msg.Status = updated.Status

	senderRoom := domain.PersonalRoom(msg.SenderID)
	if err := uc.bus.Publish(senderRoom.Channel(), domain.StatusUpdateEvent(msg.ID, updated.Status)); err != nil {
		logger.Log.Errorf("publish messageStatusUpdate error:", err, zap.String("messageID", msg.ID))
	}
}

// History returns a chronological page of a direct pair's or a group's
// timeline.
func (uc *MessageUseCase) History(ctx context.Context, filter domain.HistoryFilter, limit, skip int64) ([]domain.Message, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if skip < 0 {
		skip = 0
	}
	if filter.GroupID != "" {
		if err := uc.requireGroupMember(ctx, filter.UserID, filter.GroupID); err != nil {
			return nil, err
		}
	}
	return uc.msgRepo.History(ctx, filter, limit, skip)
}

// requireGroupMember gates every group read path. Deactivation freezes the
// room for members too.
func (uc *MessageUseCase) requireGroupMember(ctx context.Context, userID, groupID string) error {
	group, err := uc.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return err
	}
	if !group.IsActive || !group.IsMember(userID) {
		return domain.ErrUnauthorized
	}
	return nil
}

// MarkConversationRead bulk-flips unread messages addressed to readerID in
// one conversation. Safe to repeat; the second call changes nothing.
func (uc *MessageUseCase) MarkConversationRead(ctx context.Context, readerID, chatID string, isGroup bool) (int64, error) {
	scope := domain.ReadScope{ReaderID: readerID}
	if isGroup {
		if err := uc.requireGroupMember(ctx, readerID, chatID); err != nil {
			return 0, err
		}
		scope.GroupID = chatID
	} else {
		scope.CounterpartID = chatID
	}
	return uc.msgRepo.MarkRead(ctx, scope)
}

// MarkMessageRead handles a per-message read receipt: advances the message
// to read and notifies the original sender's personal room.
func (uc *MessageUseCase) MarkMessageRead(ctx context.Context, messageID, readerID string) (*domain.Message, error) {
	msg, err := uc.msgRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if err := uc.canRead(ctx, msg, readerID); err != nil {
		return nil, err
	}

	updated, err := uc.msgRepo.UpdateStatus(ctx, messageID, domain.StatusRead)
	if err != nil {
		return nil, err
	}

	senderRoom := domain.PersonalRoom(updated.SenderID)
	if err := uc.bus.Publish(senderRoom.Channel(), domain.StatusUpdateEvent(updated.ID, updated.Status)); err != nil {
		logger.Log.Errorf("publish messageStatusUpdate error:", err, zap.String("messageID", updated.ID))
	}
	return updated, nil
}

// canRead only the addressed recipient (direct) or a fellow group member may
// acknowledge a message; the sender can't read-receipt their own.
func (uc *MessageUseCase) canRead(ctx context.Context, msg *domain.Message, readerID string) error {
	if msg.SenderID == readerID {
		return domain.ErrUnauthorized
	}
	if msg.Kind == domain.KindDirect {
		if msg.ReceiverID != readerID {
			return domain.ErrUnauthorized
		}
		return nil
	}
	group, err := uc.groupRepo.FindByID(ctx, msg.GroupID)
	if err != nil {
		return err
	}
	if !group.IsMember(readerID) {
		return domain.ErrUnauthorized
	}
	return nil
}
