package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/domain"
)

type CategoryHandler struct {
	repos *domain.Repos
}

func NewCategoryHandler(repos *domain.Repos) *CategoryHandler {
	return &CategoryHandler{repos: repos}
}

type CreateCategoryRequest struct {
	Name    string     `json:"name"`
	ImageID *uuid.UUID `json:"imageId"`
}

type UpdateCategoryRequest struct {
	Name    *string    `json:"name"`
	ImageID *uuid.UUID `json:"imageId"`
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.repos.Categories.List(c.Context(), bearerToken(c), domain.CategoryListOptions{
		Sort: parseSort(c),
	})
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(categories))
	for _, cat := range categories {
		out = append(out, cat.Data(true))
	}
	return c.JSON(fiber.Map{"categories": out})
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	category, err := h.repos.Categories.Get(c.Context(), bearerToken(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"category": category.Data(true)})
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.repos.Categories.Create(c.Context(), bearerToken(c), domain.CategoryValues{
		Name:    req.Name,
		ImageID: req.ImageID,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"category": category.Data(true)})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	category, err := h.repos.Categories.Update(c.Context(), bearerToken(c), id, domain.CategoryPatch{
		Name:    req.Name,
		ImageID: req.ImageID,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"category": category.Data(true)})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.repos.Categories.Delete(c.Context(), bearerToken(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
