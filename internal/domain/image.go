package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Image wraps a stored image record.
type Image struct {
	access
	rec   models.Image
	repos *Repos
}

func (r *Repos) newImage(rec models.Image, token string) *Image {
	return &Image{access: callerAccess(token), rec: rec, repos: r}
}

func (i *Image) ID() uuid.UUID        { return i.rec.ID }
func (i *Image) CreatedAt() time.Time { return i.rec.CreatedAt }
func (i *Image) UpdatedAt() time.Time { return i.rec.UpdatedAt }

func (i *Image) Authenticate(ctx context.Context, pre *identity.Identity) error {
	return i.authenticate(ctx, i.repos.resolver, pre)
}

func (i *Image) Extension(filtered bool) string {
	i.filtering(filtered)
	return i.rec.Extension
}

// FileName is the on-disk name the upload handler stores the binary under.
func (i *Image) FileName() string {
	return i.rec.ID.String() + "." + i.rec.Extension
}

func (i *Image) Data(filtered bool) map[string]any {
	i.filtering(filtered)
	return map[string]any{
		"id":        i.rec.ID,
		"extension": i.rec.Extension,
		"fileName":  i.FileName(),
		"createdAt": i.rec.CreatedAt,
		"updatedAt": i.rec.UpdatedAt,
	}
}

func (i *Image) Update(ctx context.Context, patch ImagePatch) error {
	fresh, err := i.repos.Images.Update(ctx, i.token, i.rec.ID, patch)
	if err != nil {
		return err
	}
	i.rec = fresh.rec
	return nil
}

func (i *Image) Delete(ctx context.Context) error {
	return i.repos.Images.Delete(ctx, i.token, i.rec.ID)
}
