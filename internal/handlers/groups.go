package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sweatcrew/backend/internal/services"
	"github.com/sweatcrew/backend/pkg/utils"
)

type GroupsHandler struct {
	Groups *services.GroupService
}

func NewGroupsHandler(groups *services.GroupService) *GroupsHandler {
	return &GroupsHandler{Groups: groups}
}

type createGroupRequest struct {
	Name              string   `json:"name"`
	Description       *string  `json:"description"`
	PhotoURL          *string  `json:"photoUrl"`
	GoalRep           int      `json:"goalRep"`
	DiscordWebhookURL *string  `json:"discordWebhookUrl"`
	DiscordInviteURL  *string  `json:"discordInviteUrl"`
	Tags              []string `json:"tags"`
	OwnerNickname     string   `json:"ownerNickname"`
	OwnerPassword     string   `json:"ownerPassword"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.OwnerNickname = strings.TrimSpace(req.OwnerNickname)
	if req.Name == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name is required")
	}
	if req.OwnerNickname == "" {
		return utils.Error(c, fiber.StatusBadRequest, "ownerNickname is required")
	}
	if len(req.OwnerPassword) < utils.MinPasswordLength {
		return utils.Error(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	if req.GoalRep < 0 {
		return utils.Error(c, fiber.StatusBadRequest, "goalRep cannot be negative")
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	detail, err := h.Groups.Create(services.CreateGroupInput{
		Name:              req.Name,
		Description:       req.Description,
		PhotoURL:          req.PhotoURL,
		GoalRep:           req.GoalRep,
		DiscordWebhookURL: req.DiscordWebhookURL,
		DiscordInviteURL:  req.DiscordInviteURL,
		Tags:              req.Tags,
		OwnerNickname:     req.OwnerNickname,
		OwnerPassword:     req.OwnerPassword,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, detail)
}

func (h *GroupsHandler) List(c *fiber.Ctx) error {
	pagination := utils.ParsePagination(c)

	sortBy := c.Query("sort", "latest")
	switch sortBy {
	case "latest", "recommend", "participants":
	default:
		return utils.Error(c, fiber.StatusBadRequest, "invalid sort")
	}

	groups, total, err := h.Groups.List(services.ListGroupsParams{
		Pagination: pagination,
		Sort:       sortBy,
		Search:     c.Query("search"),
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{
		"groups":     groups,
		"pagination": utils.NewPagination(pagination, total),
	})
}

func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	detail, err := h.Groups.Get(groupID)
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, detail)
}

type updateGroupRequest struct {
	Name              *string   `json:"name"`
	Description       *string   `json:"description"`
	PhotoURL          *string   `json:"photoUrl"`
	GoalRep           *int      `json:"goalRep"`
	DiscordWebhookURL *string   `json:"discordWebhookUrl"`
	DiscordInviteURL  *string   `json:"discordInviteUrl"`
	Tags              *[]string `json:"tags"`
	OwnerNickname     *string   `json:"ownerNickname"`
	OwnerPassword     string    `json:"ownerPassword"`
}

func (h *GroupsHandler) Update(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req updateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.OwnerPassword == "" {
		return utils.Error(c, fiber.StatusBadRequest, "ownerPassword is required")
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return utils.Error(c, fiber.StatusBadRequest, "name cannot be empty")
	}
	if req.GoalRep != nil && *req.GoalRep < 0 {
		return utils.Error(c, fiber.StatusBadRequest, "goalRep cannot be negative")
	}

	detail, err := h.Groups.Update(groupID, services.UpdateGroupInput{
		Name:              req.Name,
		Description:       req.Description,
		PhotoURL:          req.PhotoURL,
		GoalRep:           req.GoalRep,
		DiscordWebhookURL: req.DiscordWebhookURL,
		DiscordInviteURL:  req.DiscordInviteURL,
		Tags:              req.Tags,
		OwnerNickname:     req.OwnerNickname,
		OwnerPassword:     req.OwnerPassword,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, detail)
}

type deleteGroupRequest struct {
	OwnerPassword string `json:"ownerPassword"`
	Password      string `json:"password"`
}

func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	groupID, err := parseUUID(c.Params("groupId"))
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid group id")
	}

	var req deleteGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	// Both field names are in the wild; take whichever was sent.
	password := req.OwnerPassword
	if password == "" {
		password = req.Password
	}
	if password == "" {
		return utils.Error(c, fiber.StatusBadRequest, "ownerPassword is required")
	}

	if err := h.Groups.Delete(groupID, password); err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, fiber.Map{"message": "group deleted"})
}
