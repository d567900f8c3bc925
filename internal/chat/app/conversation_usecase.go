package app

import (
	"context"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/internal/chat/repository"
	"workforce_chat_service/pkg/logger"

	"go.uber.org/zap"
)

// ConversationUseCase derives per-counterpart conversation summaries. Pure
// read-side composition: summaries are computed from the message store on
// demand, never persisted.
type ConversationUseCase struct {
	msgRepo  repository.MessageRepository
	userRepo repository.UserRepository
}

// NewConversationUseCase init create conversation use case
func NewConversationUseCase(msgRepo repository.MessageRepository, userRepo repository.UserRepository) *ConversationUseCase {
	return &ConversationUseCase{
		msgRepo:  msgRepo,
		userRepo: userRepo,
	}
}

// ListConversations returns one summary per direct counterpart, newest
// conversation first, enriched with directory display names when available.
func (uc *ConversationUseCase) ListConversations(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	summaries, err := uc.msgRepo.Conversations(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range summaries {
		user, err := uc.userRepo.FindByID(ctx, summaries[i].CounterpartID)
		if err != nil {
			// Directory gaps only lose the display name, not the summary.
			logger.Log.Warn("conversation counterpart lookup failed",
				zap.String("counterpartID", summaries[i].CounterpartID), zap.Error(err))
			continue
		}
		summaries[i].CounterpartName = user.FullName()
		summaries[i].CounterpartEmail = user.Email
	}
	return summaries, nil
}
