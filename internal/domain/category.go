package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Category wraps a stored category. All fields are universally visible; only
// mutation is restricted, at the gate.
type Category struct {
	access
	rec   models.Category
	repos *Repos
}

func (r *Repos) newCategory(rec models.Category, token string) *Category {
	return &Category{access: callerAccess(token), rec: rec, repos: r}
}

func (c *Category) ID() uuid.UUID        { return c.rec.ID }
func (c *Category) CreatedAt() time.Time { return c.rec.CreatedAt }
func (c *Category) UpdatedAt() time.Time { return c.rec.UpdatedAt }

func (c *Category) Authenticate(ctx context.Context, pre *identity.Identity) error {
	return c.authenticate(ctx, c.repos.resolver, pre)
}

func (c *Category) Name(filtered bool) string {
	c.filtering(filtered)
	return c.rec.Name
}

func (c *Category) ImageID(filtered bool) *uuid.UUID {
	c.filtering(filtered)
	return c.rec.ImageID
}

func (c *Category) Data(filtered bool) map[string]any {
	c.filtering(filtered)
	return map[string]any{
		"id":        c.rec.ID,
		"name":      c.rec.Name,
		"imageId":   c.rec.ImageID,
		"createdAt": c.rec.CreatedAt,
		"updatedAt": c.rec.UpdatedAt,
	}
}

// Projects lists the public projects in this category.
func (c *Category) Projects(ctx context.Context) ([]*Project, error) {
	id := c.rec.ID
	return c.repos.Projects.List(ctx, c.token, ProjectListOptions{
		Filter: ProjectFilter{CategoryID: &id},
	})
}

func (c *Category) Update(ctx context.Context, patch CategoryPatch) error {
	fresh, err := c.repos.Categories.Update(ctx, c.token, c.rec.ID, patch)
	if err != nil {
		return err
	}
	c.rec = fresh.rec
	return nil
}

func (c *Category) Delete(ctx context.Context) error {
	return c.repos.Categories.Delete(ctx, c.token, c.rec.ID)
}
