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

func TestProjectStatusGatedVisibility(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	creator, creatorToken := seedUser(t, r, models.RoleInitiator)
	_, strangerToken := seedUser(t, r, models.RoleSupporter)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	hidden := seedProject(t, r, creator.ID, models.StatusNeedsVerification)
	public := seedProject(t, r, creator.ID, models.StatusPublic)

	t.Run("stranger sees nothing of a hidden project", func(t *testing.T) {
		w, err := r.Projects.Get(ctx, strangerToken, hidden.ID)
		require.NoError(t, err)
		assert.Nil(t, w.Title(true))
		assert.Nil(t, w.Description(true))
		assert.Nil(t, w.Status(true))
		assert.Nil(t, w.Data(true))
	})

	t.Run("creator sees own hidden project", func(t *testing.T) {
		w, err := r.Projects.Get(ctx, creatorToken, hidden.ID)
		require.NoError(t, err)
		require.NotNil(t, w.Title(true))
		assert.Equal(t, hidden.Title, *w.Title(true))
		assert.NotNil(t, w.Data(true))
	})

	t.Run("admin sees hidden project", func(t *testing.T) {
		w, err := r.Projects.Get(ctx, adminToken, hidden.ID)
		require.NoError(t, err)
		assert.NotNil(t, w.Data(true))
	})

	t.Run("public project visible to everyone", func(t *testing.T) {
		w, err := r.Projects.Get(ctx, strangerToken, public.ID)
		require.NoError(t, err)
		require.NotNil(t, w.Status(true))
		assert.Equal(t, models.StatusPublic, *w.Status(true))
	})
}

func TestProjectList(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	creator, _ := seedUser(t, r, models.RoleInitiator)
	_, supporterToken := seedUser(t, r, models.RoleSupporter)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	seedProject(t, r, creator.ID, models.StatusPublic)
	seedProject(t, r, creator.ID, models.StatusNeedsVerification)
	seedProject(t, r, creator.ID, models.StatusUnlisted)

	t.Run("default listing is constrained to public", func(t *testing.T) {
		projects, err := r.Projects.List(ctx, supporterToken, ProjectListOptions{})
		require.NoError(t, err)
		assert.Len(t, projects, 1)
	})

	t.Run("explicit hidden status without the flag yields empty", func(t *testing.T) {
		status := models.StatusNeedsVerification
		projects, err := r.Projects.List(ctx, supporterToken, ProjectListOptions{
			Filter: ProjectFilter{Status: &status},
		})
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("include hidden lifts the constraint", func(t *testing.T) {
		projects, err := r.Projects.List(ctx, adminToken, ProjectListOptions{
			Filter: ProjectFilter{IncludeHidden: true},
		})
		require.NoError(t, err)
		assert.Len(t, projects, 3)
	})

	t.Run("hidden rows are still field-filtered for non-owners", func(t *testing.T) {
		projects, err := r.Projects.List(ctx, supporterToken, ProjectListOptions{
			Filter: ProjectFilter{IncludeHidden: true},
		})
		require.NoError(t, err)
		require.Len(t, projects, 3)
		visible := 0
		for _, p := range projects {
			if p.Data(true) != nil {
				visible++
			}
		}
		assert.Equal(t, 1, visible)
	})
}

func TestProjectListByLocation(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	creator, _ := seedUser(t, r, models.RoleInitiator)
	_, token := seedUser(t, r, models.RoleSupporter)

	near := seedProject(t, r, creator.ID, models.StatusPublic)
	r.db.Model(&models.Project{}).Where("id = ?", near.ID).
		Updates(map[string]any{"latitude": 52.5200, "longitude": 13.4050})
	nearer := seedProject(t, r, creator.ID, models.StatusPublic)
	r.db.Model(&models.Project{}).Where("id = ?", nearer.ID).
		Updates(map[string]any{"latitude": 52.5205, "longitude": 13.4060})
	far := seedProject(t, r, creator.ID, models.StatusPublic)
	r.db.Model(&models.Project{}).Where("id = ?", far.ID).
		Updates(map[string]any{"latitude": 48.1351, "longitude": 11.5820})

	t.Run("nearest first within the default radius", func(t *testing.T) {
		projects, err := r.Projects.List(ctx, token, ProjectListOptions{
			Location: &Location{Lat: 52.5206, Lon: 13.4062},
		})
		require.NoError(t, err)
		require.Len(t, projects, 2)
		assert.Equal(t, nearer.ID, projects[0].ID())
		assert.Equal(t, near.ID, projects[1].ID())
	})

	t.Run("radius override", func(t *testing.T) {
		projects, err := r.Projects.List(ctx, token, ProjectListOptions{
			Location: &Location{Lat: 52.5206, Lon: 13.4062, MaxDistance: 1000000},
		})
		require.NoError(t, err)
		assert.Len(t, projects, 3)
	})
}

func TestProjectCreate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	other, _ := seedUser(t, r, models.RoleInitiator)
	initiator, initiatorToken := seedUser(t, r, models.RoleInitiator)
	_, supporterToken := seedUser(t, r, models.RoleSupporter)
	admin, adminToken := seedUser(t, r, models.RoleAdmin)

	t.Run("supporters may not create projects", func(t *testing.T) {
		_, err := r.Projects.Create(ctx, supporterToken, ProjectValues{
			Title:       "Nope",
			Description: "Should fail",
		})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("initiator is forced onto self and needs-verification", func(t *testing.T) {
		w, err := r.Projects.Create(ctx, initiatorToken, ProjectValues{
			Title:       "Skate Park",
			Description: "Ramps and rails",
			Status:      models.StatusPublic,
			CreatorID:   other.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, initiator.ID, w.rec.CreatorID)
		assert.Equal(t, models.StatusNeedsVerification, w.rec.Status)
	})

	t.Run("admin keeps the requested status and creator", func(t *testing.T) {
		w, err := r.Projects.Create(ctx, adminToken, ProjectValues{
			Title:       "Town Library",
			Description: "Books for all",
			Status:      models.StatusPublic,
			CreatorID:   other.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, other.ID, w.rec.CreatorID)
		assert.Equal(t, models.StatusPublic, w.rec.Status)
	})

	t.Run("admin defaults fall back sensibly", func(t *testing.T) {
		w, err := r.Projects.Create(ctx, adminToken, ProjectValues{
			Title:       "Defaulted",
			Description: "No creator or status given",
		})
		require.NoError(t, err)
		assert.Equal(t, admin.ID, w.rec.CreatorID)
		assert.Equal(t, models.StatusNeedsVerification, w.rec.Status)
	})

	t.Run("validation order stops at the first violation", func(t *testing.T) {
		_, err := r.Projects.Create(ctx, initiatorToken, ProjectValues{
			Title:       "ab",
			Description: "",
		})
		assert.Equal(t, apperror.CodeTitleTooShort, apperror.CodeOf(err))
	})

	t.Run("latitude out of range", func(t *testing.T) {
		_, err := r.Projects.Create(ctx, initiatorToken, ProjectValues{
			Title:       "Polar",
			Description: "Too far north",
			Latitude:    91,
		})
		assert.Equal(t, apperror.CodeLatOutOfRange, apperror.CodeOf(err))
	})

	t.Run("unknown image reference", func(t *testing.T) {
		_, err := r.Projects.Create(ctx, initiatorToken, ProjectValues{
			Title:       "With Image",
			Description: "References a ghost",
			ImageIDs:    []uuid.UUID{uuid.New()},
		})
		assert.Equal(t, apperror.CodeReferenceNotFound, apperror.CodeOf(err))
	})

	t.Run("too many images", func(t *testing.T) {
		ids := make([]uuid.UUID, models.MaxProjectImages+1)
		for i := range ids {
			ids[i] = uuid.New()
		}
		_, err := r.Projects.Create(ctx, initiatorToken, ProjectValues{
			Title:       "Gallery",
			Description: "Way too many",
			ImageIDs:    ids,
		})
		assert.Equal(t, apperror.CodeTooManyImages, apperror.CodeOf(err))
	})

	t.Run("create then get round trip", func(t *testing.T) {
		created, err := r.Projects.Create(ctx, initiatorToken, ProjectValues{
			Title:       "Round Trip",
			Description: "Persisted and reread",
			MoneyGoal:   1200,
		})
		require.NoError(t, err)
		got, err := r.Projects.Get(ctx, initiatorToken, created.ID())
		require.NoError(t, err)
		require.NotNil(t, got.Title(true))
		assert.Equal(t, "Round Trip", *got.Title(true))
	})
}

func TestProjectUpdate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	creator, creatorToken := seedUser(t, r, models.RoleInitiator)
	_, strangerToken := seedUser(t, r, models.RoleSupporter)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	project := seedProject(t, r, creator.ID, models.StatusNeedsVerification)

	t.Run("stranger denied", func(t *testing.T) {
		title := "Taken Over"
		_, err := r.Projects.Update(ctx, strangerToken, project.ID, ProjectPatch{Title: &title})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("creator cannot leave needs-verification", func(t *testing.T) {
		status := models.StatusPublic
		_, err := r.Projects.Update(ctx, creatorToken, project.ID, ProjectPatch{Status: &status})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("admin verifies the project", func(t *testing.T) {
		status := models.StatusPublic
		w, err := r.Projects.Update(ctx, adminToken, project.ID, ProjectPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, models.StatusPublic, w.rec.Status)
	})

	t.Run("creator may move between public and unlisted", func(t *testing.T) {
		status := models.StatusUnlisted
		w, err := r.Projects.Update(ctx, creatorToken, project.ID, ProjectPatch{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, models.StatusUnlisted, w.rec.Status)
	})

	t.Run("creator cannot re-enter needs-verification", func(t *testing.T) {
		status := models.StatusNeedsVerification
		_, err := r.Projects.Update(ctx, creatorToken, project.ID, ProjectPatch{Status: &status})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("empty patch writes nothing", func(t *testing.T) {
		before, err := r.Projects.Get(ctx, creatorToken, project.ID)
		require.NoError(t, err)
		after, err := r.Projects.Update(ctx, creatorToken, project.ID, ProjectPatch{})
		require.NoError(t, err)
		assert.True(t, after.UpdatedAt().Equal(before.UpdatedAt()))
	})
}

func TestProjectDelete(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	creator, creatorToken := seedUser(t, r, models.RoleInitiator)
	_, strangerToken := seedUser(t, r, models.RoleSupporter)

	project := seedProject(t, r, creator.ID, models.StatusPublic)

	require.True(t, apperror.IsAuthorization(r.Projects.Delete(ctx, strangerToken, project.ID)))
	require.NoError(t, r.Projects.Delete(ctx, creatorToken, project.ID))

	_, err := r.Projects.Get(ctx, creatorToken, project.ID)
	require.True(t, apperror.IsNotFound(err))
}

func TestProjectTraversals(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	creator, creatorToken := seedUser(t, r, models.RoleInitiator)

	project := seedProject(t, r, creator.ID, models.StatusPublic)
	seedTask(t, r, project.ID)
	seedTask(t, r, project.ID)

	w, err := r.Projects.Get(ctx, creatorToken, project.ID)
	require.NoError(t, err)

	owner, err := w.Creator(ctx)
	require.NoError(t, err)
	assert.Equal(t, creator.ID, owner.ID())

	tasks, err := w.Tasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	category, err := w.Category(ctx)
	require.NoError(t, err)
	assert.Nil(t, category)
}
