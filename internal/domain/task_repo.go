package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
	"github.com/crowdbase-dev/crowdbase/internal/validate"
)

// TaskRepo is the repository gate for tasks. Every mutation requires the
// caller to be an admin or the creator of the owning project.
type TaskRepo struct {
	repos *Repos
}

type TaskFilter struct {
	ProjectID *uuid.UUID
}

type TaskListOptions struct {
	Filter TaskFilter
	Sort   *Sort
}

type TaskValues struct {
	Title         string
	Description   string
	SupporterGoal int64
	ProjectID     uuid.UUID
}

type TaskPatch struct {
	Title         *string
	Description   *string
	SupporterGoal *int64
}

func (r *TaskRepo) List(ctx context.Context, token string, opts TaskListOptions) ([]*Task, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}

	q := r.repos.db.WithContext(ctx).Model(&models.Task{})
	if opts.Filter.ProjectID != nil {
		q = q.Where("project_id = ?", *opts.Filter.ProjectID)
	}
	q, err = applySort(q, opts.Sort, models.TaskSortFields)
	if err != nil {
		return nil, err
	}

	var recs []models.Task
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperror.NewStorage("task listing failed", err)
	}
	return lo.Map(recs, func(rec models.Task, _ int) *Task {
		w := r.repos.newTask(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w
	}), nil
}

func (r *TaskRepo) Get(ctx context.Context, token string, id uuid.UUID) (*Task, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.taskRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newTask(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *TaskRepo) Create(ctx context.Context, token string, vals TaskValues) (*Task, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	project, err := r.repos.projectRecord(ctx, vals.ProjectID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && caller.ID != project.CreatorID {
		return nil, apperror.NewAuthorization("only the project creator or an admin may create tasks")
	}

	rec := models.Task{
		ID:            uuid.New(),
		Title:         vals.Title,
		Description:   vals.Description,
		SupporterGoal: vals.SupporterGoal,
		ProjectID:     vals.ProjectID,
	}
	if err := validate.Task(rec); err != nil {
		return nil, err
	}
	if err := r.repos.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translateStore("task create", err, "")
	}

	w := r.repos.newTask(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *TaskRepo) Update(ctx context.Context, token string, id uuid.UUID, patch TaskPatch) (*Task, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.taskRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeOwner(ctx, caller.ID, caller.IsAdmin(), rec.ProjectID); err != nil {
		return nil, err
	}

	merged := rec
	changes := map[string]any{}
	if patch.Title != nil && *patch.Title != rec.Title {
		merged.Title = *patch.Title
		changes["title"] = *patch.Title
	}
	if patch.Description != nil && *patch.Description != rec.Description {
		merged.Description = *patch.Description
		changes["description"] = *patch.Description
	}
	if patch.SupporterGoal != nil && *patch.SupporterGoal != rec.SupporterGoal {
		merged.SupporterGoal = *patch.SupporterGoal
		changes["supporter_goal"] = *patch.SupporterGoal
	}
	if err := validate.Task(merged); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		w := r.repos.newTask(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w, nil
	}

	err = r.repos.db.WithContext(ctx).
		Model(&models.Task{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, translateStore("task update", err, "")
	}

	fresh, err := r.repos.taskRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newTask(fresh, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *TaskRepo) Delete(ctx context.Context, token string, id uuid.UUID) error {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return err
	}
	rec, err := r.repos.taskRecord(ctx, id)
	if err != nil {
		return err
	}
	if err := r.authorizeOwner(ctx, caller.ID, caller.IsAdmin(), rec.ProjectID); err != nil {
		return err
	}
	if err := r.repos.db.WithContext(ctx).Delete(&models.Task{}, "id = ?", id).Error; err != nil {
		return apperror.NewStorage("task delete failed", err)
	}
	return nil
}

func (r *TaskRepo) authorizeOwner(ctx context.Context, callerID uuid.UUID, admin bool, projectID uuid.UUID) error {
	if admin {
		return nil
	}
	project, err := r.repos.projectRecord(ctx, projectID)
	if err != nil {
		return err
	}
	if callerID != project.CreatorID {
		return apperror.NewAuthorization("only the project creator or an admin may modify tasks")
	}
	return nil
}
