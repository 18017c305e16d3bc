package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/domain"
)

type ApplicationHandler struct {
	repos *domain.Repos
}

func NewApplicationHandler(repos *domain.Repos) *ApplicationHandler {
	return &ApplicationHandler{repos: repos}
}

type CreateApplicationRequest struct {
	Text   string    `json:"text"`
	TaskID uuid.UUID `json:"taskId"`
}

type UpdateApplicationRequest struct {
	Text     *string `json:"text"`
	Accepted *bool   `json:"accepted"`
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	userID, err := parseUUIDQuery(c, "userId")
	if err != nil {
		return err
	}
	taskID, err := parseUUIDQuery(c, "taskId")
	if err != nil {
		return err
	}
	var accepted *bool
	if raw := c.Query("accepted"); raw != "" {
		v := raw == "true"
		accepted = &v
	}

	apps, err := h.repos.Applications.List(c.Context(), bearerToken(c), domain.ApplicationListOptions{
		Filter: domain.ApplicationFilter{UserID: userID, TaskID: taskID, Accepted: accepted},
		Sort:   parseSort(c),
	})
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(apps))
	for _, a := range apps {
		data, err := a.Data(c.Context(), true)
		if err != nil {
			return err
		}
		out = append(out, data)
	}
	return c.JSON(fiber.Map{"applications": out})
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	app, err := h.repos.Applications.Get(c.Context(), bearerToken(c), id)
	if err != nil {
		return err
	}
	data, err := app.Data(c.Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": data})
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	var req CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	app, err := h.repos.Applications.Create(c.Context(), bearerToken(c), domain.ApplicationValues{
		Text:   req.Text,
		TaskID: req.TaskID,
	})
	if err != nil {
		return err
	}
	data, err := app.Data(c.Context(), true)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"application": data})
}

func (h *ApplicationHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	app, err := h.repos.Applications.Update(c.Context(), bearerToken(c), id, domain.ApplicationPatch{
		Text:     req.Text,
		Accepted: req.Accepted,
	})
	if err != nil {
		return err
	}
	data, err := app.Data(c.Context(), true)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": data})
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.repos.Applications.Delete(c.Context(), bearerToken(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
