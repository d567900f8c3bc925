package app

import (
	"github.com/gofiber/fiber/v2"
)

// GroupHandler REST surface over chat group management.
type GroupHandler struct {
	groupUC *GroupUseCase
}

// NewGroupHandler create GroupHandler
func NewGroupHandler(groupUC *GroupUseCase) *GroupHandler {
	return &GroupHandler{groupUC: groupUC}
}

// Create builds a custom group with the caller as admin.
func (h *GroupHandler) Create(c *fiber.Ctx) error {
	type request struct {
		Name        string   `json:"name" validate:"required"`
		Description string   `json:"description"`
		Members     []string `json:"members" validate:"required,min=1"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	group, err := h.groupUC.Create(c.UserContext(), currentUserID(c), req.Name, req.Description, req.Members)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": group})
}

// MyGroups lists the caller's active groups.
func (h *GroupHandler) MyGroups(c *fiber.Ctx) error {
	groups, err := h.groupUC.MyGroups(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": groups})
}

// Get returns one group to a member.
func (h *GroupHandler) Get(c *fiber.Ctx) error {
	group, err := h.groupUC.Get(c.UserContext(), currentUserID(c), c.Params("groupId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": group})
}

// AddMembers grows a group's roster.
func (h *GroupHandler) AddMembers(c *fiber.Ctx) error {
	type request struct {
		Members []string `json:"members" validate:"required,min=1"`
	}

	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	group, added, err := h.groupUC.AddMembers(c.UserContext(), currentUserID(c), c.Params("groupId"), req.Members)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": group, "added": added})
}

// RemoveMember removes one member from a group.
func (h *GroupHandler) RemoveMember(c *fiber.Ctx) error {
	group, err := h.groupUC.RemoveMember(c.UserContext(), currentUserID(c), c.Params("groupId"), c.Params("memberId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": group})
}

// DepartmentGroup returns (materializing on first access) the caller's
// department group.
func (h *GroupHandler) DepartmentGroup(c *fiber.Ctx) error {
	group, err := h.groupUC.DepartmentGroup(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "data": group})
}

// Deactivate soft-deletes a group.
func (h *GroupHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.groupUC.Deactivate(c.UserContext(), currentUserID(c), c.Params("groupId")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success"})
}
