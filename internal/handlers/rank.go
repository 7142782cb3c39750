package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/utils"
)

type RankHandler struct {
	Ranking *services.RankingService
}

func NewRankHandler(ranking *services.RankingService) *RankHandler {
	return &RankHandler{Ranking: ranking}
}

func (h *RankHandler) Get(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	duration := services.RankDuration(c.Query("duration", string(services.RankWeekly)))
	if duration != services.RankWeekly && duration != services.RankMonthly {
		return utils.Error(c, fiber.StatusBadRequest, "duration must be weekly or monthly")
	}

	entries, err := h.Ranking.Rank(groupID, duration, utils.ParsePagination(c))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, entries)
}
