// Package domain is the authorization core of the backend. It pairs, per
// entity type, a repository gate that decides whether a caller may perform an
// operation at all, with an entity wrapper whose field accessors decide what
// that caller may see. Storage access goes through GORM; every storage
// failure is translated at the gate boundary and never leaks raw.
package domain

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Repos aggregates the per-entity repository gates. All gates share one
// database handle and one identity resolver.
type Repos struct {
	db       *gorm.DB
	resolver *identity.Resolver

	Users        *UserRepo
	Projects     *ProjectRepo
	Tasks        *TaskRepo
	Applications *ApplicationRepo
	Categories   *CategoryRepo
	Images       *ImageRepo
}

// Resolver exposes the shared identity resolver for collaborators that sit
// outside the gates, like the session service.
func (r *Repos) Resolver() *identity.Resolver { return r.resolver }

func New(db *gorm.DB, resolver *identity.Resolver) *Repos {
	r := &Repos{db: db, resolver: resolver}
	r.Users = &UserRepo{repos: r}
	r.Projects = &ProjectRepo{repos: r}
	r.Tasks = &TaskRepo{repos: r}
	r.Applications = &ApplicationRepo{repos: r}
	r.Categories = &CategoryRepo{repos: r}
	r.Images = &ImageRepo{repos: r}
	return r
}

// SortDirection of a list request.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Sort names one field of the entity's closed sortable set plus a direction.
type Sort struct {
	Field     string
	Direction SortDirection
}

// Location switches a project listing into nearest-first mode around the
// given origin. MaxDistance is in meters; zero means DefaultMaxDistance.
// Location and Sort are mutually exclusive; a location wins.
type Location struct {
	Lat         float64
	Lon         float64
	MaxDistance float64
}

// DefaultMaxDistance bounds location listings when no radius is given.
const DefaultMaxDistance = 15000.0

// applySort validates the requested sort field against the entity's closed
// set and appends the ORDER BY clause. No sort means newest first.
func applySort(q *gorm.DB, s *Sort, fields map[string]string) (*gorm.DB, error) {
	if s == nil {
		return q.Order("created_at DESC"), nil
	}
	col, ok := fields[s.Field]
	if !ok {
		return nil, apperror.NewValidation(apperror.CodeSortFieldInvalid)
	}
	dir := "ASC"
	if s.Direction == SortDesc {
		dir = "DESC"
	}
	return q.Order(col + " " + dir), nil
}

// translateStore wraps a storage failure for the caller. Duplicate-key
// violations on known fields become the given validation code; foreign-key
// violations mean a supplied reference does not exist.
func translateStore(action string, err error, dup apperror.Code) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) && dup != "" {
		return apperror.NewValidation(dup)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperror.NewValidation(apperror.CodeReferenceNotFound)
	}
	return apperror.NewStorage(action+" failed", err)
}

// Raw record loaders. These are system-level reads used internally by gates
// and wrappers (existence checks, ownership chains); they bypass caller
// authorization on purpose and must never be exposed outside the package.

func (r *Repos) userRecord(ctx context.Context, id uuid.UUID) (models.User, error) {
	var rec models.User
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, apperror.NewNotFound("user")
	}
	if err != nil {
		return rec, apperror.NewStorage("user lookup failed", err)
	}
	return rec, nil
}

func (r *Repos) projectRecord(ctx context.Context, id uuid.UUID) (models.Project, error) {
	var rec models.Project
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, apperror.NewNotFound("project")
	}
	if err != nil {
		return rec, apperror.NewStorage("project lookup failed", err)
	}
	return rec, nil
}

func (r *Repos) taskRecord(ctx context.Context, id uuid.UUID) (models.Task, error) {
	var rec models.Task
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, apperror.NewNotFound("task")
	}
	if err != nil {
		return rec, apperror.NewStorage("task lookup failed", err)
	}
	return rec, nil
}

func (r *Repos) applicationRecord(ctx context.Context, id uuid.UUID) (models.Application, error) {
	var rec models.Application
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, apperror.NewNotFound("application")
	}
	if err != nil {
		return rec, apperror.NewStorage("application lookup failed", err)
	}
	return rec, nil
}

func (r *Repos) categoryRecord(ctx context.Context, id uuid.UUID) (models.Category, error) {
	var rec models.Category
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, apperror.NewNotFound("category")
	}
	if err != nil {
		return rec, apperror.NewStorage("category lookup failed", err)
	}
	return rec, nil
}

func (r *Repos) imageRecord(ctx context.Context, id uuid.UUID) (models.Image, error) {
	var rec models.Image
	err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, apperror.NewNotFound("image")
	}
	if err != nil {
		return rec, apperror.NewStorage("image lookup failed", err)
	}
	return rec, nil
}

// projectCreator resolves the ownership chain Task -> Project -> Creator.
func (r *Repos) projectCreator(ctx context.Context, taskID uuid.UUID) (uuid.UUID, error) {
	task, err := r.taskRecord(ctx, taskID)
	if err != nil {
		return uuid.Nil, err
	}
	project, err := r.projectRecord(ctx, task.ProjectID)
	if err != nil {
		return uuid.Nil, err
	}
	return project.CreatorID, nil
}

// distanceMeters is the haversine distance between two coordinates.
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371000.0
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadius * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
