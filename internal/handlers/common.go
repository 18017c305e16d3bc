package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/domain"
)

// bearerToken extracts the opaque caller token. An empty result is passed
// through as-is; the gates report it as an authorization failure.
func bearerToken(c *fiber.Ctx) string {
	return strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func parseSort(c *fiber.Ctx) *domain.Sort {
	field := c.Query("sort")
	if field == "" {
		return nil
	}
	dir := domain.SortAsc
	if strings.EqualFold(c.Query("direction"), "DESC") {
		dir = domain.SortDesc
	}
	return &domain.Sort{Field: field, Direction: dir}
}

func parseUUIDQuery(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+key)
	}
	return &id, nil
}
