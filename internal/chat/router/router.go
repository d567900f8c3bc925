package router

import (
	"context"

	"workforce_chat_service/internal/chat/app"
	"workforce_chat_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes wires the chat REST surface and the websocket entry point.
// Everything sits behind the JWT middleware; notification sending is
// additionally role-gated.
func RegisterRoutes(
	r *fiber.App,
	chatWebsocket *app.ChatWebsocketHandler,
	messages *app.MessageHandler,
	groups *app.GroupHandler,
	notifications *app.NotificationHandler,
) {
	api := r.Group("/api", middlewares.JWTMiddleware())

	msg := api.Group("/messages")
	msg.Get("/history", messages.History)
	msg.Get("/conversations", messages.Conversations)
	msg.Post("/mark-read", messages.MarkRead)
	msg.Post("/", messages.Send)

	grp := api.Group("/groups")
	grp.Get("/", groups.MyGroups)
	grp.Post("/", groups.Create)
	grp.Post("/department", groups.DepartmentGroup)
	grp.Get("/:groupId", groups.Get)
	grp.Delete("/:groupId", groups.Deactivate)
	grp.Post("/:groupId/members", groups.AddMembers)
	grp.Delete("/:groupId/members/:memberId", groups.RemoveMember)

	notif := api.Group("/notifications")
	notif.Get("/", notifications.List)
	notif.Post("/send", middlewares.RequireRoles("admin", "manager"), notifications.Send)
	notif.Post("/:notificationId/read", notifications.MarkRead)

	r.Get("/ws", middlewares.JWTMiddleware(), websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))
}
