package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sweatcrew/backend/internal/models"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/utils"
)

type RecordsHandler struct {
	Records *services.RecordService
}

func NewRecordsHandler(records *services.RecordService) *RecordsHandler {
	return &RecordsHandler{Records: records}
}

func (h *RecordsHandler) List(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	order := c.Query("order", "desc")
	if order != "asc" && order != "desc" {
		return utils.Error(c, fiber.StatusBadRequest, "invalid order")
	}
	orderBy := c.Query("orderBy", "createdAt")
	if orderBy != "createdAt" && orderBy != "time" {
		return utils.Error(c, fiber.StatusBadRequest, "invalid orderBy")
	}

	records, total, err := h.Records.List(groupID, services.ListRecordsParams{
		Pagination: utils.ParsePagination(c),
		Order:      order,
		OrderBy:    orderBy,
		Search:     c.Query("search"),
		Sport:      c.Query("sport"),
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"records": records,
		"total":   total,
	})
}

type createRecordRequest struct {
	ExerciseType   string   `json:"exerciseType"`
	Description    *string  `json:"description"`
	Time           int      `json:"time"`
	Distance       float64  `json:"distance"`
	Photos         []string `json:"photos"`
	AuthorNickname string   `json:"authorNickname"`
	AuthorPassword string   `json:"authorPassword"`
}

func (h *RecordsHandler) Create(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req createRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	exerciseType := models.ExerciseType(strings.TrimSpace(req.ExerciseType))
	if !exerciseType.Valid() {
		return utils.Error(c, fiber.StatusBadRequest, "invalid exerciseType")
	}
	if req.Time <= 0 {
		return utils.Error(c, fiber.StatusBadRequest, "time must be positive")
	}
	if req.Distance < 0 {
		return utils.Error(c, fiber.StatusBadRequest, "distance cannot be negative")
	}
	req.AuthorNickname = strings.TrimSpace(req.AuthorNickname)
	if req.AuthorNickname == "" || req.AuthorPassword == "" {
		return utils.Error(c, fiber.StatusBadRequest, "authorNickname and authorPassword are required")
	}
	if req.Photos == nil {
		req.Photos = []string{}
	}

	view, err := h.Records.Create(groupID, services.CreateRecordInput{
		ExerciseType:   exerciseType,
		Description:    req.Description,
		Time:           req.Time,
		Distance:       req.Distance,
		Photos:         req.Photos,
		AuthorNickname: req.AuthorNickname,
		AuthorPassword: req.AuthorPassword,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, view)
}

func (h *RecordsHandler) Get(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}
	recordID, err := parseUUID(c.Params("recordId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid record id")
	}

	view, err := h.Records.Get(groupID, recordID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, view)
}
