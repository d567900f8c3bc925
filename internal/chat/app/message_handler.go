package app

import (
	"strconv"

	"workforce_chat_service/internal/chat/domain"
	"workforce_chat_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MessageHandler REST surface over the message lifecycle. The websocket path
// goes through the same use case.
type MessageHandler struct {
	messageUC      *MessageUseCase
	conversationUC *ConversationUseCase
}

// NewMessageHandler create MessageHandler
func NewMessageHandler(messageUC *MessageUseCase, conversationUC *ConversationUseCase) *MessageHandler {
	return &MessageHandler{
		messageUC:      messageUC,
		conversationUC: conversationUC,
	}
}

// Send persists and dispatches a message over REST.
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	type request struct {
		ReceiverID string `json:"receiverId"`
		GroupID    string `json:"groupId"`
		Content    string `json:"content" validate:"required"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	dest := domain.Destination{ReceiverID: req.ReceiverID, GroupID: req.GroupID}
	msg, err := h.messageUC.Send(c.UserContext(), currentUserID(c), dest, req.Content)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": msg})
}

// History returns one conversation's messages in chronological order.
// recipientId selects a direct conversation, groupId a group one.
func (h *MessageHandler) History(c *fiber.Ctx) error {
	filter := domain.HistoryFilter{
		UserID:        currentUserID(c),
		CounterpartID: c.Query("recipientId"),
		GroupID:       c.Query("groupId"),
	}
	limit := queryInt64(c, "limit", 0)
	skip := queryInt64(c, "skip", 0)

	messages, err := h.messageUC.History(c.UserContext(), filter, limit, skip)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": messages})
}

// Conversations lists the caller's direct conversation summaries.
func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	summaries, err := h.conversationUC.ListConversations(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": summaries})
}

// MarkRead bulk-marks one conversation read for the caller.
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	type request struct {
		ChatID  string `json:"chatId" validate:"required"`
		IsGroup bool   `json:"isGroup"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	readerID := currentUserID(c)
	modified, err := h.messageUC.MarkConversationRead(c.UserContext(), readerID, req.ChatID, req.IsGroup)
	if err != nil {
		return respondError(c, err)
	}

	logger.Log.Debug("conversation marked read",
		zap.String("readerID", readerID), zap.String("chatID", req.ChatID), zap.Int64("modified", modified))
	return c.JSON(fiber.Map{"status": "success", "modifiedCount": modified})
}

func queryInt64(c *fiber.Ctx, key string, def int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}
