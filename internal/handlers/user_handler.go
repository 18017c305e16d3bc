package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crowdbase-dev/crowdbase/internal/domain"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

type UserHandler struct {
	repos *domain.Repos
}

func NewUserHandler(repos *domain.Repos) *UserHandler {
	return &UserHandler{repos: repos}
}

type UpdateUserRequest struct {
	FullName *string        `json:"fullName"`
	Mail     *string        `json:"mail"`
	Gender   *models.Gender `json:"gender"`
	Role     *models.Role   `json:"role"`
	Password *string        `json:"password"`
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	taskID, err := parseUUIDQuery(c, "taskId")
	if err != nil {
		return err
	}
	var role *models.Role
	if raw := c.Query("role"); raw != "" {
		r := models.Role(raw)
		role = &r
	}

	users, err := h.repos.Users.List(c.Context(), bearerToken(c), domain.UserListOptions{
		Filter: domain.UserFilter{Role: role, TaskID: taskID},
		Sort:   parseSort(c),
	})
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Data(true))
	}
	return c.JSON(fiber.Map{"users": out})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	user, err := h.repos.Users.Get(c.Context(), bearerToken(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user.Data(true)})
}

// Create is the admin path for provisioning accounts; self-service signup
// goes through /auth/register instead.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.repos.Users.Create(c.Context(), bearerToken(c), domain.UserValues{
		FullName: req.FullName,
		Mail:     req.Mail,
		Gender:   req.Gender,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user.Data(true)})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.repos.Users.Update(c.Context(), bearerToken(c), id, domain.UserPatch{
		FullName: req.FullName,
		Mail:     req.Mail,
		Gender:   req.Gender,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": user.Data(true)})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.repos.Users.Delete(c.Context(), bearerToken(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
