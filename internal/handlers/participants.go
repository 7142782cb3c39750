package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/utils"
)

type ParticipantsHandler struct {
	Membership *services.MembershipService
}

func NewParticipantsHandler(membership *services.MembershipService) *ParticipantsHandler {
	return &ParticipantsHandler{Membership: membership}
}

type participantRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

func (h *ParticipantsHandler) Join(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req participantRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Nickname == "" {
		return utils.Error(c, fiber.StatusBadRequest, "nickname is required")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return utils.Error(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}

	detail, err := h.Membership.Join(groupID, req.Nickname, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, detail)
}

func (h *ParticipantsHandler) Leave(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req participantRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Nickname = strings.TrimSpace(req.Nickname)
	if req.Nickname == "" || req.Password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "nickname and password are required")
	}

	if err := h.Membership.Leave(groupID, req.Nickname, req.Password); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
