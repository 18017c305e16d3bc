package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Project wraps a stored project. The whole record is status-gated: unless
// the project is PUBLIC, only the creator and admins see its fields through
// a filtered read.
type Project struct {
	access
	rec   models.Project
	repos *Repos
}

func (r *Repos) newProject(rec models.Project, token string) *Project {
	return &Project{access: callerAccess(token), rec: rec, repos: r}
}

func (p *Project) ID() uuid.UUID        { return p.rec.ID }
func (p *Project) CreatedAt() time.Time { return p.rec.CreatedAt }
func (p *Project) UpdatedAt() time.Time { return p.rec.UpdatedAt }

func (p *Project) Authenticate(ctx context.Context, pre *identity.Identity) error {
	return p.authenticate(ctx, p.repos.resolver, pre)
}

// visible is the status-gated predicate shared by all project fields.
func (p *Project) visible() bool {
	if p.rec.Status == models.StatusPublic {
		return true
	}
	return p.isOwnerOrAdmin(p.rec.CreatorID)
}

func (p *Project) Title(filtered bool) *string {
	if p.filtering(filtered) && !p.visible() {
		return nil
	}
	return &p.rec.Title
}

func (p *Project) Description(filtered bool) *string {
	if p.filtering(filtered) && !p.visible() {
		return nil
	}
	return &p.rec.Description
}

func (p *Project) Status(filtered bool) *models.ProjectStatus {
	if p.filtering(filtered) && !p.visible() {
		return nil
	}
	return &p.rec.Status
}

// Data returns the projection, or nil when the caller may not see the
// project at all.
func (p *Project) Data(filtered bool) map[string]any {
	if p.filtering(filtered) && !p.visible() {
		return nil
	}
	return map[string]any{
		"id":           p.rec.ID,
		"title":        p.rec.Title,
		"description":  p.rec.Description,
		"status":       p.rec.Status,
		"moneyGoal":    p.rec.MoneyGoal,
		"moneyPledged": p.rec.MoneyPledged,
		"latitude":     p.rec.Latitude,
		"longitude":    p.rec.Longitude,
		"creatorId":    p.rec.CreatorID,
		"categoryId":   p.rec.CategoryID,
		"createdAt":    p.rec.CreatedAt,
		"updatedAt":    p.rec.UpdatedAt,
	}
}

// Creator resolves the owning user through the user gate, re-evaluating
// authorization for the wrapper's caller.
func (p *Project) Creator(ctx context.Context) (*User, error) {
	return p.repos.Users.Get(ctx, p.token, p.rec.CreatorID)
}

// Category resolves the optional category reference.
func (p *Project) Category(ctx context.Context) (*Category, error) {
	if p.rec.CategoryID == nil {
		return nil, nil
	}
	return p.repos.Categories.Get(ctx, p.token, *p.rec.CategoryID)
}

// Tasks lists the project's tasks through the task gate.
func (p *Project) Tasks(ctx context.Context) ([]*Task, error) {
	id := p.rec.ID
	return p.repos.Tasks.List(ctx, p.token, TaskListOptions{
		Filter: TaskFilter{ProjectID: &id},
	})
}

// Images returns the attached image wrappers.
func (p *Project) Images(ctx context.Context) ([]*Image, error) {
	id := p.rec.ID
	return p.repos.Images.listForProject(ctx, p.token, id)
}

func (p *Project) Update(ctx context.Context, patch ProjectPatch) error {
	fresh, err := p.repos.Projects.Update(ctx, p.token, p.rec.ID, patch)
	if err != nil {
		return err
	}
	p.rec = fresh.rec
	return nil
}

func (p *Project) Delete(ctx context.Context) error {
	return p.repos.Projects.Delete(ctx, p.token, p.rec.ID)
}
