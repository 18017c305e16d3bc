package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Application wraps a stored application. Text and the applicant id are
// chain-gated: visible to the applicant, to admins, and to the creator of
// the project reached via the application's task. The resolved chain is
// cached per wrapper so repeated field reads cost at most one traversal.
type Application struct {
	access
	rec   models.Application
	repos *Repos

	chainCreator *uuid.UUID
}

func (r *Repos) newApplication(rec models.Application, token string) *Application {
	return &Application{access: callerAccess(token), rec: rec, repos: r}
}

func (a *Application) ID() uuid.UUID        { return a.rec.ID }
func (a *Application) CreatedAt() time.Time { return a.rec.CreatedAt }
func (a *Application) UpdatedAt() time.Time { return a.rec.UpdatedAt }

func (a *Application) Authenticate(ctx context.Context, pre *identity.Identity) error {
	return a.authenticate(ctx, a.repos.resolver, pre)
}

// chainVisible evaluates the chain-gated predicate. The cheap checks come
// first; the two-hop traversal runs only for callers that could be the
// project creator, and its result is cached.
func (a *Application) chainVisible(ctx context.Context) (bool, error) {
	if a.caller == nil {
		return false, nil
	}
	if a.caller.IsAdmin() || a.caller.ID == a.rec.UserID {
		return true, nil
	}
	if a.chainCreator == nil {
		task, err := a.repos.Tasks.Get(ctx, a.token, a.rec.TaskID)
		if err != nil {
			return false, err
		}
		project, err := a.repos.Projects.Get(ctx, a.token, task.rec.ProjectID)
		if err != nil {
			return false, err
		}
		a.chainCreator = &project.rec.CreatorID
	}
	return *a.chainCreator == a.caller.ID, nil
}

func (a *Application) Text(ctx context.Context, filtered bool) (*string, error) {
	if a.filtering(filtered) {
		ok, err := a.chainVisible(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}
	return &a.rec.Text, nil
}

func (a *Application) UserID(ctx context.Context, filtered bool) (*uuid.UUID, error) {
	if a.filtering(filtered) {
		ok, err := a.chainVisible(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
	}
	return &a.rec.UserID, nil
}

func (a *Application) TaskID(filtered bool) uuid.UUID {
	a.filtering(filtered)
	return a.rec.TaskID
}

func (a *Application) Accepted(filtered bool) bool {
	a.filtering(filtered)
	return a.rec.Accepted
}

func (a *Application) Data(ctx context.Context, filtered bool) (map[string]any, error) {
	data := map[string]any{
		"id":        a.rec.ID,
		"taskId":    a.rec.TaskID,
		"accepted":  a.rec.Accepted,
		"createdAt": a.rec.CreatedAt,
		"updatedAt": a.rec.UpdatedAt,
	}
	text, err := a.Text(ctx, filtered)
	if err != nil {
		return nil, err
	}
	if text != nil {
		data["text"] = *text
	}
	userID, err := a.UserID(ctx, filtered)
	if err != nil {
		return nil, err
	}
	if userID != nil {
		data["userId"] = *userID
	}
	return data, nil
}

// Task resolves the applied-for task through the task gate.
func (a *Application) Task(ctx context.Context) (*Task, error) {
	return a.repos.Tasks.Get(ctx, a.token, a.rec.TaskID)
}

// Applicant resolves the applying user through the user gate.
func (a *Application) Applicant(ctx context.Context) (*User, error) {
	return a.repos.Users.Get(ctx, a.token, a.rec.UserID)
}

func (a *Application) Update(ctx context.Context, patch ApplicationPatch) error {
	fresh, err := a.repos.Applications.Update(ctx, a.token, a.rec.ID, patch)
	if err != nil {
		return err
	}
	a.rec = fresh.rec
	a.chainCreator = nil
	return nil
}

func (a *Application) Delete(ctx context.Context) error {
	return a.repos.Applications.Delete(ctx, a.token, a.rec.ID)
}
