package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/logger"
	"github.com/sweatcrew/backend/pkg/utils"
)

func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(value))
}

// serviceError maps the service sentinels onto the HTTP taxonomy. Anything
// unrecognized is a 500 with a generic message; the underlying error goes to
// the log, never to the client.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrGroupNotFound):
		return utils.Error(c, fiber.StatusNotFound, "group not found")
	case errors.Is(err, services.ErrUserNotFound):
		return utils.Error(c, fiber.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrParticipantNotFound):
		return utils.Error(c, fiber.StatusNotFound, "participant not found")
	case errors.Is(err, services.ErrRecordNotFound):
		return utils.Error(c, fiber.StatusNotFound, "record not found")
	case errors.Is(err, services.ErrTagNotFound):
		return utils.Error(c, fiber.StatusNotFound, "tag not found")
	case errors.Is(err, services.ErrPasswordMismatch):
		return utils.Error(c, fiber.StatusUnauthorized, "wrong password")
	case errors.Is(err, services.ErrNicknameTaken):
		return utils.Error(c, fiber.StatusConflict, "nickname already taken in this group")
	case errors.Is(err, services.ErrAlreadyRecommended):
		return utils.Error(c, fiber.StatusConflict, "group already recommended")
	case errors.Is(err, services.ErrNotRecommended):
		return utils.Error(c, fiber.StatusNotFound, "group not recommended")
	default:
		logger.Error("unhandled_service_error", err, map[string]interface{}{
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "server error")
	}
}
