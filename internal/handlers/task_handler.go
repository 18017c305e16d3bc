package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/domain"
)

type TaskHandler struct {
	repos *domain.Repos
}

func NewTaskHandler(repos *domain.Repos) *TaskHandler {
	return &TaskHandler{repos: repos}
}

type CreateTaskRequest struct {
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	SupporterGoal int64     `json:"supporterGoal"`
	ProjectID     uuid.UUID `json:"projectId"`
}

type UpdateTaskRequest struct {
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	SupporterGoal *int64  `json:"supporterGoal"`
}

func (h *TaskHandler) List(c *fiber.Ctx) error {
	projectID, err := parseUUIDQuery(c, "projectId")
	if err != nil {
		return err
	}
	tasks, err := h.repos.Tasks.List(c.Context(), bearerToken(c), domain.TaskListOptions{
		Filter: domain.TaskFilter{ProjectID: projectID},
		Sort:   parseSort(c),
	})
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Data(true))
	}
	return c.JSON(fiber.Map{"tasks": out})
}

func (h *TaskHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	task, err := h.repos.Tasks.Get(c.Context(), bearerToken(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"task": task.Data(true)})
}

func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	task, err := h.repos.Tasks.Create(c.Context(), bearerToken(c), domain.TaskValues{
		Title:         req.Title,
		Description:   req.Description,
		SupporterGoal: req.SupporterGoal,
		ProjectID:     req.ProjectID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"task": task.Data(true)})
}

func (h *TaskHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	task, err := h.repos.Tasks.Update(c.Context(), bearerToken(c), id, domain.TaskPatch{
		Title:         req.Title,
		Description:   req.Description,
		SupporterGoal: req.SupporterGoal,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"task": task.Data(true)})
}

func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.repos.Tasks.Delete(c.Context(), bearerToken(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
