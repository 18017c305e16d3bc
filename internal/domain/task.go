package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Task wraps a stored task. Task fields carry no visibility predicate of
// their own; authorization for mutation flows from the owning project.
type Task struct {
	access
	rec   models.Task
	repos *Repos
}

func (r *Repos) newTask(rec models.Task, token string) *Task {
	return &Task{access: callerAccess(token), rec: rec, repos: r}
}

func (t *Task) ID() uuid.UUID        { return t.rec.ID }
func (t *Task) CreatedAt() time.Time { return t.rec.CreatedAt }
func (t *Task) UpdatedAt() time.Time { return t.rec.UpdatedAt }

func (t *Task) Authenticate(ctx context.Context, pre *identity.Identity) error {
	return t.authenticate(ctx, t.repos.resolver, pre)
}

func (t *Task) Title(filtered bool) string {
	t.filtering(filtered)
	return t.rec.Title
}

func (t *Task) Description(filtered bool) string {
	t.filtering(filtered)
	return t.rec.Description
}

func (t *Task) SupporterGoal(filtered bool) int64 {
	t.filtering(filtered)
	return t.rec.SupporterGoal
}

func (t *Task) ProjectID(filtered bool) uuid.UUID {
	t.filtering(filtered)
	return t.rec.ProjectID
}

func (t *Task) Data(filtered bool) map[string]any {
	t.filtering(filtered)
	return map[string]any{
		"id":            t.rec.ID,
		"title":         t.rec.Title,
		"description":   t.rec.Description,
		"supporterGoal": t.rec.SupporterGoal,
		"projectId":     t.rec.ProjectID,
		"createdAt":     t.rec.CreatedAt,
		"updatedAt":     t.rec.UpdatedAt,
	}
}

// Project resolves the owning project through the project gate.
func (t *Task) Project(ctx context.Context) (*Project, error) {
	return t.repos.Projects.Get(ctx, t.token, t.rec.ProjectID)
}

// Applications lists this task's applications through the application gate.
func (t *Task) Applications(ctx context.Context) ([]*Application, error) {
	id := t.rec.ID
	return t.repos.Applications.List(ctx, t.token, ApplicationListOptions{
		Filter: ApplicationFilter{TaskID: &id},
	})
}

func (t *Task) Update(ctx context.Context, patch TaskPatch) error {
	fresh, err := t.repos.Tasks.Update(ctx, t.token, t.rec.ID, patch)
	if err != nil {
		return err
	}
	t.rec = fresh.rec
	return nil
}

func (t *Task) Delete(ctx context.Context) error {
	return t.repos.Tasks.Delete(ctx, t.token, t.rec.ID)
}
