package app

import (
	"github.com/gofiber/fiber/v2"
)

// NotificationHandler REST surface over workforce notifications.
type NotificationHandler struct {
	notificationUC *NotificationUseCase
}

// NewNotificationHandler create NotificationHandler
func NewNotificationHandler(notificationUC *NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

// Send stores and pushes a notification. Role gating happens in the router;
// an empty target list broadcasts to every active user except the sender.
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	type request struct {
		Title       string   `json:"title" validate:"required"`
		Message     string   `json:"message" validate:"required"`
		TargetUsers []string `json:"targetUsers"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	n, err := h.notificationUC.Send(c.UserContext(), currentUserID(c), req.Title, req.Message, req.TargetUsers)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": n})
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	notifications, err := h.notificationUC.List(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": notifications})
}

// MarkRead records the caller's read of one notification.
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	err := h.notificationUC.MarkRead(c.UserContext(), c.Params("notificationId"), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}
