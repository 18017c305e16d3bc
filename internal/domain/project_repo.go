package domain

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
	"github.com/crowdbase-dev/crowdbase/internal/validate"
)

// ProjectRepo is the repository gate for projects.
type ProjectRepo struct {
	repos *Repos
}

type ProjectFilter struct {
	Status     *models.ProjectStatus
	CreatorID  *uuid.UUID
	CategoryID *uuid.UUID
	// IncludeHidden lifts the server-side PUBLIC constraint. Field-level
	// filtering still applies to whatever the listing returns.
	IncludeHidden bool
}

type ProjectListOptions struct {
	Filter   ProjectFilter
	Sort     *Sort
	Location *Location
}

type ProjectValues struct {
	Title        string
	Description  string
	Status       models.ProjectStatus
	MoneyGoal    float64
	MoneyPledged float64
	Latitude     float64
	Longitude    float64
	CreatorID    uuid.UUID
	CategoryID   *uuid.UUID
	ImageIDs     []uuid.UUID
}

type ProjectPatch struct {
	Title        *string
	Description  *string
	Status       *models.ProjectStatus
	MoneyGoal    *float64
	MoneyPledged *float64
	Latitude     *float64
	Longitude    *float64
	CategoryID   *uuid.UUID
	// ImageIDs replaces the full image set when non-nil.
	ImageIDs []uuid.UUID
}

// List returns projects visible to the caller. Without IncludeHidden the
// listing is constrained to PUBLIC server-side; an explicit filter for a
// different status then yields an empty result rather than an error, since
// the request is structurally impossible to fulfill safely. A location
// switches ordering to nearest-first and overrides any requested sort.
func (r *ProjectRepo) List(ctx context.Context, token string, opts ProjectListOptions) ([]*Project, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}

	if !opts.Filter.IncludeHidden {
		if opts.Filter.Status != nil && *opts.Filter.Status != models.StatusPublic {
			return []*Project{}, nil
		}
		public := models.StatusPublic
		opts.Filter.Status = &public
	}

	q := r.repos.db.WithContext(ctx).Model(&models.Project{})
	if opts.Filter.Status != nil {
		q = q.Where("status = ?", *opts.Filter.Status)
	}
	if opts.Filter.CreatorID != nil {
		q = q.Where("creator_id = ?", *opts.Filter.CreatorID)
	}
	if opts.Filter.CategoryID != nil {
		q = q.Where("category_id = ?", *opts.Filter.CategoryID)
	}

	if opts.Location == nil {
		q, err = applySort(q, opts.Sort, models.ProjectSortFields)
		if err != nil {
			return nil, err
		}
	}

	var recs []models.Project
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperror.NewStorage("project listing failed", err)
	}

	if loc := opts.Location; loc != nil {
		maxDist := loc.MaxDistance
		if maxDist <= 0 {
			maxDist = DefaultMaxDistance
		}
		recs = lo.Filter(recs, func(rec models.Project, _ int) bool {
			return distanceMeters(loc.Lat, loc.Lon, rec.Latitude, rec.Longitude) <= maxDist
		})
		sort.SliceStable(recs, func(i, j int) bool {
			di := distanceMeters(loc.Lat, loc.Lon, recs[i].Latitude, recs[i].Longitude)
			dj := distanceMeters(loc.Lat, loc.Lon, recs[j].Latitude, recs[j].Longitude)
			return di < dj
		})
	}

	return lo.Map(recs, func(rec models.Project, _ int) *Project {
		w := r.repos.newProject(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w
	}), nil
}

func (r *ProjectRepo) Get(ctx context.Context, token string, id uuid.UUID) (*Project, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.projectRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newProject(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// Create persists a new project. Admins may create on behalf of anyone with
// any status; other initiators are forced onto themselves as creator and
// onto NEEDS_VERIFICATION, whatever the payload said.
func (r *ProjectRepo) Create(ctx context.Context, token string, vals ProjectValues) (*Project, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && !caller.IsInitiator() {
		return nil, apperror.NewAuthorization("only initiators and admins may create projects")
	}

	if caller.IsAdmin() {
		if vals.CreatorID == uuid.Nil {
			vals.CreatorID = caller.ID
		}
		if vals.Status == "" {
			vals.Status = models.StatusNeedsVerification
		}
	} else {
		vals.CreatorID = caller.ID
		vals.Status = models.StatusNeedsVerification
	}

	rec := models.Project{
		ID:           uuid.New(),
		Title:        vals.Title,
		Description:  vals.Description,
		Status:       vals.Status,
		MoneyGoal:    vals.MoneyGoal,
		MoneyPledged: vals.MoneyPledged,
		Latitude:     vals.Latitude,
		Longitude:    vals.Longitude,
		CreatorID:    vals.CreatorID,
		CategoryID:   vals.CategoryID,
	}
	if err := validate.Project(rec); err != nil {
		return nil, err
	}

	if len(vals.ImageIDs) > models.MaxProjectImages {
		return nil, apperror.NewValidation(apperror.CodeTooManyImages)
	}
	images, err := r.loadImages(ctx, vals.ImageIDs)
	if err != nil {
		return nil, err
	}
	rec.Images = images

	if err := r.repos.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translateStore("project create", err, "")
	}

	w := r.repos.newProject(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// Update merges the patch, re-validates, and writes the delta. A creator may
// move a project between UNLISTED and PUBLIC but never into or out of
// NEEDS_VERIFICATION; that transition belongs to admins.
func (r *ProjectRepo) Update(ctx context.Context, token string, id uuid.UUID, patch ProjectPatch) (*Project, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.projectRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		if caller.ID != rec.CreatorID {
			return nil, apperror.NewAuthorization("only the creator or an admin may update a project")
		}
		if patch.Status != nil && *patch.Status != rec.Status &&
			(*patch.Status == models.StatusNeedsVerification || rec.Status == models.StatusNeedsVerification) {
			return nil, apperror.NewAuthorization("verification status is controlled by admins")
		}
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
	if patch.Status != nil && *patch.Status != rec.Status {
		merged.Status = *patch.Status
		changes["status"] = *patch.Status
	}
	if patch.MoneyGoal != nil && *patch.MoneyGoal != rec.MoneyGoal {
		merged.MoneyGoal = *patch.MoneyGoal
		changes["money_goal"] = *patch.MoneyGoal
	}
	if patch.MoneyPledged != nil && *patch.MoneyPledged != rec.MoneyPledged {
		merged.MoneyPledged = *patch.MoneyPledged
		changes["money_pledged"] = *patch.MoneyPledged
	}
	if patch.Latitude != nil && *patch.Latitude != rec.Latitude {
		merged.Latitude = *patch.Latitude
		changes["latitude"] = *patch.Latitude
	}
	if patch.Longitude != nil && *patch.Longitude != rec.Longitude {
		merged.Longitude = *patch.Longitude
		changes["longitude"] = *patch.Longitude
	}
	if patch.CategoryID != nil {
		merged.CategoryID = patch.CategoryID
		changes["category_id"] = *patch.CategoryID
	}
	if err := validate.Project(merged); err != nil {
		return nil, err
	}

	if patch.ImageIDs != nil {
		if len(patch.ImageIDs) > models.MaxProjectImages {
			return nil, apperror.NewValidation(apperror.CodeTooManyImages)
		}
		images, err := r.loadImages(ctx, patch.ImageIDs)
		if err != nil {
			return nil, err
		}
		assoc := r.repos.db.WithContext(ctx).Model(&models.Project{ID: id}).Association("Images")
		if err := assoc.Replace(imagePointers(images)...); err != nil {
			return nil, apperror.NewStorage("project image update failed", err)
		}
	}

	if len(changes) > 0 {
		err = r.repos.db.WithContext(ctx).
			Model(&models.Project{}).
			Where("id = ?", id).
			Updates(changes).Error
		if err != nil {
			return nil, translateStore("project update", err, "")
		}
	}

	fresh, err := r.repos.projectRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newProject(fresh, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, token string, id uuid.UUID) error {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return err
	}
	rec, err := r.repos.projectRecord(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && caller.ID != rec.CreatorID {
		return apperror.NewAuthorization("only the creator or an admin may delete a project")
	}
	if err := r.repos.db.WithContext(ctx).Select("Images").Delete(&models.Project{ID: id}).Error; err != nil {
		return apperror.NewStorage("project delete failed", err)
	}
	return nil
}

// loadImages resolves image ids to records; an unknown id is a validation
// failure, not a storage one.
func (r *ProjectRepo) loadImages(ctx context.Context, ids []uuid.UUID) ([]models.Image, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var images []models.Image
	if err := r.repos.db.WithContext(ctx).Find(&images, "id IN ?", ids).Error; err != nil {
		return nil, apperror.NewStorage("image lookup failed", err)
	}
	if len(images) != len(lo.Uniq(ids)) {
		return nil, apperror.NewValidation(apperror.CodeReferenceNotFound)
	}
	return images, nil
}

func imagePointers(images []models.Image) []any {
	return lo.Map(images, func(img models.Image, _ int) any {
		return &models.Image{ID: img.ID}
	})
}
