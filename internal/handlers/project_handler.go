package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/domain"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

type ProjectHandler struct {
	repos *domain.Repos
}

func NewProjectHandler(repos *domain.Repos) *ProjectHandler {
	return &ProjectHandler{repos: repos}
}

type CreateProjectRequest struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Status       models.ProjectStatus `json:"status"`
	MoneyGoal    float64              `json:"moneyGoal"`
	MoneyPledged float64              `json:"moneyPledged"`
	Latitude     float64              `json:"latitude"`
	Longitude    float64              `json:"longitude"`
	CreatorID    uuid.UUID            `json:"creatorId"`
	CategoryID   *uuid.UUID           `json:"categoryId"`
	ImageIDs     []uuid.UUID          `json:"imageIds"`
}

type UpdateProjectRequest struct {
	Title        *string               `json:"title"`
	Description  *string               `json:"description"`
	Status       *models.ProjectStatus `json:"status"`
	MoneyGoal    *float64              `json:"moneyGoal"`
	MoneyPledged *float64              `json:"moneyPledged"`
	Latitude     *float64              `json:"latitude"`
	Longitude    *float64              `json:"longitude"`
	CategoryID   *uuid.UUID            `json:"categoryId"`
	ImageIDs     []uuid.UUID           `json:"imageIds"`
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	creatorID, err := parseUUIDQuery(c, "creatorId")
	if err != nil {
		return err
	}
	categoryID, err := parseUUIDQuery(c, "categoryId")
	if err != nil {
		return err
	}
	var status *models.ProjectStatus
	if raw := c.Query("status"); raw != "" {
		s := models.ProjectStatus(raw)
		status = &s
	}

	opts := domain.ProjectListOptions{
		Filter: domain.ProjectFilter{
			Status:        status,
			CreatorID:     creatorID,
			CategoryID:    categoryID,
			IncludeHidden: c.QueryBool("includeHidden"),
		},
		Sort: parseSort(c),
	}
	if rawLat := c.Query("lat"); rawLat != "" {
		lat, err := strconv.ParseFloat(rawLat, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lat")
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid lon")
		}
		opts.Location = &domain.Location{
			Lat:         lat,
			Lon:         lon,
			MaxDistance: c.QueryFloat("maxDistance"),
		}
	}

	projects, err := h.repos.Projects.List(c.Context(), bearerToken(c), opts)
	if err != nil {
		return err
	}

	out := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		if data := p.Data(true); data != nil {
			out = append(out, data)
		}
	}
	return c.JSON(fiber.Map{"projects": out})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	project, err := h.repos.Projects.Get(c.Context(), bearerToken(c), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"project": project.Data(true)})
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	project, err := h.repos.Projects.Create(c.Context(), bearerToken(c), domain.ProjectValues{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		MoneyGoal:    req.MoneyGoal,
		MoneyPledged: req.MoneyPledged,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CreatorID:    req.CreatorID,
		CategoryID:   req.CategoryID,
		ImageIDs:     req.ImageIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"project": project.Data(true)})
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	project, err := h.repos.Projects.Update(c.Context(), bearerToken(c), id, domain.ProjectPatch{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		MoneyGoal:    req.MoneyGoal,
		MoneyPledged: req.MoneyPledged,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		CategoryID:   req.CategoryID,
		ImageIDs:     req.ImageIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"project": project.Data(true)})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.repos.Projects.Delete(c.Context(), bearerToken(c), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
