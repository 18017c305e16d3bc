package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
	"github.com/crowdbase-dev/crowdbase/internal/validate"
)

// ApplicationRepo is the repository gate for task applications.
type ApplicationRepo struct {
	repos *Repos
}

type ApplicationFilter struct {
	UserID   *uuid.UUID
	TaskID   *uuid.UUID
	Accepted *bool
}

type ApplicationListOptions struct {
	Filter ApplicationFilter
	Sort   *Sort
}

type ApplicationValues struct {
	Text   string
	TaskID uuid.UUID
}

type ApplicationPatch struct {
	Text     *string
	Accepted *bool
}

func (r *ApplicationRepo) List(ctx context.Context, token string, opts ApplicationListOptions) ([]*Application, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}

	q := r.repos.db.WithContext(ctx).Model(&models.Application{})
	if opts.Filter.UserID != nil {
		q = q.Where("user_id = ?", *opts.Filter.UserID)
	}
	if opts.Filter.TaskID != nil {
		q = q.Where("task_id = ?", *opts.Filter.TaskID)
	}
	if opts.Filter.Accepted != nil {
		q = q.Where("accepted = ?", *opts.Filter.Accepted)
	}
	q, err = applySort(q, opts.Sort, models.ApplicationSortFields)
	if err != nil {
		return nil, err
	}

	var recs []models.Application
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperror.NewStorage("application listing failed", err)
	}
	return lo.Map(recs, func(rec models.Application, _ int) *Application {
		w := r.repos.newApplication(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w
	}), nil
}

func (r *ApplicationRepo) Get(ctx context.Context, token string, id uuid.UUID) (*Application, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.applicationRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newApplication(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// Create files an application for the caller themselves; applying on behalf
// of someone else is not a thing. The duplicate check is backed by the
// composite unique index, so a concurrent double-apply still fails with
// ALREADY_APPLIED instead of producing a second row.
func (r *ApplicationRepo) Create(ctx context.Context, token string, vals ApplicationValues) (*Application, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	if _, err := r.repos.taskRecord(ctx, vals.TaskID); err != nil {
		return nil, err
	}

	var count int64
	err = r.repos.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("user_id = ? AND task_id = ?", caller.ID, vals.TaskID).
		Count(&count).Error
	if err != nil {
		return nil, apperror.NewStorage("application lookup failed", err)
	}
	if count > 0 {
		return nil, apperror.NewValidation(apperror.CodeAlreadyApplied)
	}

	rec := models.Application{
		ID:     uuid.New(),
		Text:   vals.Text,
		UserID: caller.ID,
		TaskID: vals.TaskID,
	}
	if err := validate.Application(rec); err != nil {
		return nil, err
	}
	if err := r.repos.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translateStore("application create", err, apperror.CodeAlreadyApplied)
	}

	w := r.repos.newApplication(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// Update is reserved for admins and the project creator reached via the
// application's task; accepting an application is their call, not the
// applicant's.
func (r *ApplicationRepo) Update(ctx context.Context, token string, id uuid.UUID, patch ApplicationPatch) (*Application, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.applicationRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.authorizeChain(ctx, caller.ID, caller.IsAdmin(), rec.TaskID); err != nil {
		return nil, err
	}

	merged := rec
	changes := map[string]any{}
	if patch.Text != nil && *patch.Text != rec.Text {
		merged.Text = *patch.Text
		changes["text"] = *patch.Text
	}
	if patch.Accepted != nil && *patch.Accepted != rec.Accepted {
		merged.Accepted = *patch.Accepted
		changes["accepted"] = *patch.Accepted
	}
	if err := validate.Application(merged); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		w := r.repos.newApplication(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w, nil
	}

	err = r.repos.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, translateStore("application update", err, "")
	}

	fresh, err := r.repos.applicationRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newApplication(fresh, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *ApplicationRepo) Delete(ctx context.Context, token string, id uuid.UUID) error {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return err
	}
	rec, err := r.repos.applicationRecord(ctx, id)
	if err != nil {
		return err
	}
	if err := r.authorizeChain(ctx, caller.ID, caller.IsAdmin(), rec.TaskID); err != nil {
		return err
	}
	if err := r.repos.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id).Error; err != nil {
		return apperror.NewStorage("application delete failed", err)
	}
	return nil
}

func (r *ApplicationRepo) authorizeChain(ctx context.Context, callerID uuid.UUID, admin bool, taskID uuid.UUID) error {
	if admin {
		return nil
	}
	creator, err := r.repos.projectCreator(ctx, taskID)
	if err != nil {
		return err
	}
	if callerID != creator {
		return apperror.NewAuthorization("only the project creator or an admin may modify applications")
	}
	return nil
}
