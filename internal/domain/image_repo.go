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

// ImageRepo is the repository gate for images. Listing the full image table
// is admin only; reading a single image is open to registered callers, and
// all mutation is admin only.
type ImageRepo struct {
	repos *Repos
}

type ImageListOptions struct {
	Sort *Sort
}

type ImageValues struct {
	Extension string
}

type ImagePatch struct {
	Extension *string
}

func (r *ImageRepo) List(ctx context.Context, token string, opts ImageListOptions) ([]*Image, error) {
	caller, err := r.requireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	q := r.repos.db.WithContext(ctx).Model(&models.Image{})
	q, err = applySort(q, opts.Sort, models.ImageSortFields)
	if err != nil {
		return nil, err
	}

	var recs []models.Image
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperror.NewStorage("image listing failed", err)
	}
	return r.wrapAll(ctx, recs, token, caller), nil
}

func (r *ImageRepo) Get(ctx context.Context, token string, id uuid.UUID) (*Image, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.imageRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newImage(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *ImageRepo) Create(ctx context.Context, token string, vals ImageValues) (*Image, error) {
	caller, err := r.requireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	rec := models.Image{
		ID:        uuid.New(),
		Extension: vals.Extension,
	}
	if err := validate.Image(rec); err != nil {
		return nil, err
	}
	if err := r.repos.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translateStore("image create", err, "")
	}

	w := r.repos.newImage(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *ImageRepo) Update(ctx context.Context, token string, id uuid.UUID, patch ImagePatch) (*Image, error) {
	caller, err := r.requireAdmin(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.imageRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := rec
	changes := map[string]any{}
	if patch.Extension != nil && *patch.Extension != rec.Extension {
		merged.Extension = *patch.Extension
		changes["extension"] = *patch.Extension
	}
	if err := validate.Image(merged); err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		w := r.repos.newImage(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w, nil
	}

	err = r.repos.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, translateStore("image update", err, "")
	}

	fresh, err := r.repos.imageRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newImage(fresh, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// Delete removes the image; project associations are detached via the join
// table, and categories referencing it fall back to no image.
func (r *ImageRepo) Delete(ctx context.Context, token string, id uuid.UUID) error {
	if _, err := r.requireAdmin(ctx, token); err != nil {
		return err
	}
	if _, err := r.repos.imageRecord(ctx, id); err != nil {
		return err
	}
	if err := r.repos.db.WithContext(ctx).Select("Projects").Delete(&models.Image{ID: id}).Error; err != nil {
		return apperror.NewStorage("image delete failed", err)
	}
	return nil
}

// listForProject backs the project wrapper's image traversal.
func (r *ImageRepo) listForProject(ctx context.Context, token string, projectID uuid.UUID) ([]*Image, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	var recs []models.Image
	err = r.repos.db.WithContext(ctx).
		Joins("JOIN project_images ON project_images.image_id = images.id").
		Where("project_images.project_id = ?", projectID).
		Find(&recs).Error
	if err != nil {
		return nil, apperror.NewStorage("project image listing failed", err)
	}
	return r.wrapAll(ctx, recs, token, caller), nil
}

func (r *ImageRepo) wrapAll(ctx context.Context, recs []models.Image, token string, caller *identity.Identity) []*Image {
	return lo.Map(recs, func(rec models.Image, _ int) *Image {
		w := r.repos.newImage(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w
	})
}

func (r *ImageRepo) requireAdmin(ctx context.Context, token string) (*identity.Identity, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, apperror.NewAuthorization("admin access required")
	}
	return caller, nil
}
