package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/utils"
)

type LikesHandler struct {
	Recommends *services.RecommendService
}

func NewLikesHandler(recommends *services.RecommendService) *LikesHandler {
	return &LikesHandler{Recommends: recommends}
}

type likeRequest struct {
	UserID uuid.UUID `json:"userId"`
}

func (h *LikesHandler) Like(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserID == uuid.Nil {
		return utils.Error(c, fiber.StatusBadRequest, "userId is required")
	}

	count, err := h.Recommends.Recommend(groupID, req.UserID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"likeCount": count})
}

func (h *LikesHandler) Unlike(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserID == uuid.Nil {
		return utils.Error(c, fiber.StatusBadRequest, "userId is required")
	}

	count, err := h.Recommends.Unrecommend(groupID, req.UserID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"likeCount": count})
}
