package domain

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

func TestImageAuthorization(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, supporterToken := seedUser(t, r, models.RoleSupporter)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	img, err := r.Images.Create(ctx, adminToken, ImageValues{Extension: "png"})
	require.NoError(t, err)

	t.Run("listing is admin only", func(t *testing.T) {
		_, err := r.Images.List(ctx, supporterToken, ImageListOptions{})
		require.True(t, apperror.IsAuthorization(err))

		images, err := r.Images.List(ctx, adminToken, ImageListOptions{})
		require.NoError(t, err)
		assert.Len(t, images, 1)
	})

	t.Run("single read open to registered callers", func(t *testing.T) {
		got, err := r.Images.Get(ctx, supporterToken, img.ID())
		require.NoError(t, err)
		assert.Equal(t, "png", got.Extension(true))
	})

	t.Run("create is admin only", func(t *testing.T) {
		_, err := r.Images.Create(ctx, supporterToken, ImageValues{Extension: "jpg"})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("delete is admin only", func(t *testing.T) {
		require.True(t, apperror.IsAuthorization(r.Images.Delete(ctx, supporterToken, img.ID())))
		require.NoError(t, r.Images.Delete(ctx, adminToken, img.ID()))
	})
}

func TestImageUpdate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, supporterToken := seedUser(t, r, models.RoleSupporter)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	img, err := r.Images.Create(ctx, adminToken, ImageValues{Extension: "jpeg"})
	require.NoError(t, err)

	t.Run("non-admin denied", func(t *testing.T) {
		ext := "png"
		_, err := r.Images.Update(ctx, supporterToken, img.ID(), ImagePatch{Extension: &ext})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("admin updates extension", func(t *testing.T) {
		ext := "png"
		w, err := r.Images.Update(ctx, adminToken, img.ID(), ImagePatch{Extension: &ext})
		require.NoError(t, err)
		assert.Equal(t, "png", w.Extension(true))
	})

	t.Run("empty patch writes nothing", func(t *testing.T) {
		before, err := r.Images.Get(ctx, adminToken, img.ID())
		require.NoError(t, err)
		after, err := r.Images.Update(ctx, adminToken, img.ID(), ImagePatch{})
		require.NoError(t, err)
		assert.True(t, after.UpdatedAt().Equal(before.UpdatedAt()))
	})
}

func TestImageFileName(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	img, err := r.Images.Create(ctx, adminToken, ImageValues{Extension: "webp"})
	require.NoError(t, err)
	assert.Equal(t, img.ID().String()+".webp", img.FileName())
}

func TestImageValidation(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	_, err := r.Images.Create(ctx, adminToken, ImageValues{})
	assert.Equal(t, apperror.CodeExtensionInvalid, apperror.CodeOf(err))
}

func TestProjectImageAttachment(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	_, creatorToken := seedUser(t, r, models.RoleInitiator)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	imgA, err := r.Images.Create(ctx, adminToken, ImageValues{Extension: "png"})
	require.NoError(t, err)
	imgB, err := r.Images.Create(ctx, adminToken, ImageValues{Extension: "jpg"})
	require.NoError(t, err)

	project, err := r.Projects.Create(ctx, creatorToken, ProjectValues{
		Title:       "Illustrated Project",
		Description: "Comes with pictures",
		ImageIDs:    []uuid.UUID{imgA.ID(), imgB.ID()},
	})
	require.NoError(t, err)

	images, err := project.Images(ctx)
	require.NoError(t, err)
	assert.Len(t, images, 2)
}
