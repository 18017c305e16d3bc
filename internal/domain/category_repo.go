package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
	"github.com/crowdbase-dev/crowdbase/internal/validate"
)

// CategoryRepo is the repository gate for categories. Reading is open to any
// registered caller; mutation is admin only.
type CategoryRepo struct {
	repos *Repos
}

type CategoryListOptions struct {
	Sort *Sort
}

type CategoryValues struct {
	Name    string
	ImageID *uuid.UUID
}

type CategoryPatch struct {
	Name    *string
	ImageID *uuid.UUID
}

func (r *CategoryRepo) List(ctx context.Context, token string, opts CategoryListOptions) ([]*Category, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}

	q := r.repos.db.WithContext(ctx).Model(&models.Category{})
	q, err = applySort(q, opts.Sort, models.CategorySortFields)
	if err != nil {
		return nil, err
	}

	var recs []models.Category
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperror.NewStorage("category listing failed", err)
	}
	return lo.Map(recs, func(rec models.Category, _ int) *Category {
		w := r.repos.newCategory(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w
	}), nil
}

func (r *CategoryRepo) Get(ctx context.Context, token string, id uuid.UUID) (*Category, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.categoryRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newCategory(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *CategoryRepo) Create(ctx context.Context, token string, vals CategoryValues) (*Category, error) {
	caller, err := r.requireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}
	if vals.ImageID != nil {
		if _, err := r.repos.imageRecord(ctx, *vals.ImageID); err != nil {
			return nil, err
		}
	}

	rec := models.Category{
		ID:      uuid.New(),
		Name:    vals.Name,
		ImageID: vals.ImageID,
	}
	if err := validate.Category(rec); err != nil {
		return nil, err
	}
	if err := r.repos.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translateStore("category create", err, "")
	}

	w := r.repos.newCategory(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *CategoryRepo) Update(ctx context.Context, token string, id uuid.UUID, patch CategoryPatch) (*Category, error) {
	caller, err := r.requireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.categoryRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := rec
	changes := map[string]any{}
	if patch.Name != nil && *patch.Name != rec.Name {
		merged.Name = *patch.Name
		changes["name"] = *patch.Name
	}
	if patch.ImageID != nil {
		if _, err := r.repos.imageRecord(ctx, *patch.ImageID); err != nil {
			return nil, err
		}
		merged.ImageID = patch.ImageID
		changes["image_id"] = *patch.ImageID
	}
	if err := validate.Category(merged); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		w := r.repos.newCategory(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w, nil
	}

	err = r.repos.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, translateStore("category update", err, "")
	}

	fresh, err := r.repos.categoryRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newCategory(fresh, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// Delete removes the category; projects referencing it are detached, not
// deleted, via the SET NULL constraint.
func (r *CategoryRepo) Delete(ctx context.Context, token string, id uuid.UUID) error {
	if _, err := r.requireAdmin(ctx, token); err != nil {
		return err
	}
	if _, err := r.repos.categoryRecord(ctx, id); err != nil {
		return err
	}
	if err := r.repos.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return apperror.NewStorage("category delete failed", err)
	}
	return nil
}

func (r *CategoryRepo) requireAdmin(ctx context.Context, token string) (*identity.Identity, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, apperror.NewAuthorization("admin access required")
	}
	return caller, nil
}
