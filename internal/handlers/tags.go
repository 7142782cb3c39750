package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/utils"
	"gorm.io/gorm"
)

// TagsHandler is read-only: tag rows are created and replaced through the
// group lifecycle, this endpoint just lists them for autocomplete.
type TagsHandler struct {
	DB *gorm.DB
}

func NewTagsHandler(db *gorm.DB) *TagsHandler {
	return &TagsHandler{DB: db}
}

func (h *TagsHandler) List(c *fiber.Ctx) error {
	pagination := utils.ParsePagination(c)

	query := h.DB.Model(&models.Tag{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var tags []models.Tag
	if err := utils.ApplyPagination(query.Order("name ASC"), pagination).Find(&tags).Error; err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, tags)
}

func (h *TagsHandler) Get(c *fiber.Ctx) error {
	tagID, err := parseUUID(c.Params("tagId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid tag id")
	}

	var tag models.Tag
	if err := h.DB.First(&tag, "id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return serviceError(c, services.ErrTagNotFound)
		}
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, tag)
}
