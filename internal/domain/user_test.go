package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

func TestUserFieldVisibility(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner, ownerToken := seedUser(t, r, models.RoleSupporter)
	_, otherToken := seedUser(t, r, models.RoleInitiator)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	t.Run("owner sees own mail", func(t *testing.T) {
		w, err := r.Users.Get(ctx, ownerToken, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, w.Mail(true))
		assert.Equal(t, owner.Mail, *w.Mail(true))
	})

	t.Run("admin sees mail", func(t *testing.T) {
		w, err := r.Users.Get(ctx, adminToken, owner.ID)
		require.NoError(t, err)
		require.NotNil(t, w.Mail(true))
	})

	t.Run("stranger sees no mail or gender", func(t *testing.T) {
		w, err := r.Users.Get(ctx, otherToken, owner.ID)
		require.NoError(t, err)
		assert.Nil(t, w.Mail(true))
		assert.Nil(t, w.Gender(true))
		assert.Equal(t, owner.FullName, w.FullName(true))
		assert.Equal(t, owner.Role, w.Role(true))
	})

	t.Run("password hash never on filtered reads", func(t *testing.T) {
		for _, token := range []string{ownerToken, adminToken, otherToken} {
			w, err := r.Users.Get(ctx, token, owner.ID)
			require.NoError(t, err)
			assert.Nil(t, w.PasswordHash(true))
			assert.NotContains(t, w.Data(true), "passwordHash")
		}
	})
}

func TestUserDataProjection(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner, ownerToken := seedUser(t, r, models.RoleSupporter)
	_, otherToken := seedUser(t, r, models.RoleSupporter)

	own, err := r.Users.Get(ctx, ownerToken, owner.ID)
	require.NoError(t, err)
	data := own.Data(true)
	assert.Equal(t, owner.Mail, data["mail"])

	foreign, err := r.Users.Get(ctx, otherToken, owner.ID)
	require.NoError(t, err)
	assert.NotContains(t, foreign.Data(true), "mail")
}

func TestUserCreate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	t.Run("anonymous self-registration defaults to supporter", func(t *testing.T) {
		w, err := r.Users.Create(ctx, "", UserValues{
			FullName: "New Person",
			Mail:     "new.person@example.com",
			Password: "long-enough-pw",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleSupporter, w.rec.Role)
	})

	t.Run("anonymous cannot register as admin", func(t *testing.T) {
		_, err := r.Users.Create(ctx, "", UserValues{
			FullName: "Sneaky",
			Mail:     "sneaky@example.com",
			Role:     models.RoleAdmin,
			Password: "long-enough-pw",
		})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("admin may create admins", func(t *testing.T) {
		_, adminToken := seedUser(t, r, models.RoleAdmin)
		w, err := r.Users.Create(ctx, adminToken, UserValues{
			FullName: "Second Admin",
			Mail:     "second.admin@example.com",
			Role:     models.RoleAdmin,
			Password: "long-enough-pw",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, w.rec.Role)
	})

	t.Run("duplicate mail", func(t *testing.T) {
		_, err := r.Users.Create(ctx, "", UserValues{
			FullName: "Clone",
			Mail:     "new.person@example.com",
			Password: "long-enough-pw",
		})
		require.True(t, apperror.IsValidation(err))
		assert.Equal(t, apperror.CodeMailAlreadyUsed, apperror.CodeOf(err))
	})

	t.Run("password is hashed before storage", func(t *testing.T) {
		w, err := r.Users.Create(ctx, "", UserValues{
			FullName: "Hashed",
			Mail:     "hashed@example.com",
			Password: "long-enough-pw",
		})
		require.NoError(t, err)
		var rec models.User
		require.NoError(t, r.db.First(&rec, "id = ?", w.ID()).Error)
		assert.NotEqual(t, "long-enough-pw", rec.PasswordHash)
		assert.NotEmpty(t, rec.PasswordHash)
	})
}

func TestUserUpdate(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner, ownerToken := seedUser(t, r, models.RoleSupporter)
	_, otherToken := seedUser(t, r, models.RoleSupporter)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	t.Run("stranger may not update", func(t *testing.T) {
		name := "Hijacked"
		_, err := r.Users.Update(ctx, otherToken, owner.ID, UserPatch{FullName: &name})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("owner updates own name", func(t *testing.T) {
		name := "Renamed Person"
		w, err := r.Users.Update(ctx, ownerToken, owner.ID, UserPatch{FullName: &name})
		require.NoError(t, err)
		assert.Equal(t, name, w.FullName(true))
	})

	t.Run("owner cannot grant admin", func(t *testing.T) {
		role := models.RoleAdmin
		_, err := r.Users.Update(ctx, ownerToken, owner.ID, UserPatch{Role: &role})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("admin grants role", func(t *testing.T) {
		role := models.RoleInitiator
		w, err := r.Users.Update(ctx, adminToken, owner.ID, UserPatch{Role: &role})
		require.NoError(t, err)
		assert.Equal(t, models.RoleInitiator, w.Role(true))
	})

	t.Run("merged record is validated", func(t *testing.T) {
		bad := "x"
		_, err := r.Users.Update(ctx, ownerToken, owner.ID, UserPatch{FullName: &bad})
		require.True(t, apperror.IsValidation(err))
		assert.Equal(t, apperror.CodeNameTooShort, apperror.CodeOf(err))
	})

	t.Run("empty patch writes nothing", func(t *testing.T) {
		before, err := r.Users.Get(ctx, ownerToken, owner.ID)
		require.NoError(t, err)
		after, err := r.Users.Update(ctx, ownerToken, owner.ID, UserPatch{})
		require.NoError(t, err)
		assert.True(t, after.UpdatedAt().Equal(before.UpdatedAt()))
	})

	t.Run("no-op values write nothing", func(t *testing.T) {
		before, err := r.Users.Get(ctx, ownerToken, owner.ID)
		require.NoError(t, err)
		same := before.FullName(true)
		after, err := r.Users.Update(ctx, ownerToken, owner.ID, UserPatch{FullName: &same})
		require.NoError(t, err)
		assert.True(t, after.UpdatedAt().Equal(before.UpdatedAt()))
	})
}

func TestUserList(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	applicant, applicantToken := seedUser(t, r, models.RoleSupporter)
	initiator, initiatorToken := seedUser(t, r, models.RoleInitiator)
	_, adminToken := seedUser(t, r, models.RoleAdmin)

	project := seedProject(t, r, initiator.ID, models.StatusPublic)
	task := seedTask(t, r, project.ID)
	seedApplication(t, r, applicant.ID, task.ID)

	t.Run("non-admin denied without task filter", func(t *testing.T) {
		_, err := r.Users.List(ctx, applicantToken, UserListOptions{})
		require.True(t, apperror.IsAuthorization(err))
	})

	t.Run("admin lists all", func(t *testing.T) {
		users, err := r.Users.List(ctx, adminToken, UserListOptions{})
		require.NoError(t, err)
		assert.Len(t, users, 3)
	})

	t.Run("task filter opens listing to non-admins", func(t *testing.T) {
		id := task.ID
		users, err := r.Users.List(ctx, initiatorToken, UserListOptions{
			Filter: UserFilter{TaskID: &id},
		})
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, applicant.ID, users[0].ID())
	})

	t.Run("role filter", func(t *testing.T) {
		role := models.RoleAdmin
		users, err := r.Users.List(ctx, adminToken, UserListOptions{
			Filter: UserFilter{Role: &role},
		})
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestUserDelete(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	victim, victimToken := seedUser(t, r, models.RoleSupporter)
	_, otherToken := seedUser(t, r, models.RoleSupporter)

	require.True(t, apperror.IsAuthorization(r.Users.Delete(ctx, otherToken, victim.ID)))
	require.NoError(t, r.Users.Delete(ctx, victimToken, victim.ID))

	_, err := r.Users.Get(ctx, otherToken, victim.ID)
	require.True(t, apperror.IsNotFound(err))
}

func TestUserTraversals(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	creator, creatorToken := seedUser(t, r, models.RoleInitiator)
	applicant, applicantToken := seedUser(t, r, models.RoleSupporter)

	public := seedProject(t, r, creator.ID, models.StatusPublic)
	seedProject(t, r, creator.ID, models.StatusNeedsVerification)
	task := seedTask(t, r, public.ID)
	seedApplication(t, r, applicant.ID, task.ID)

	t.Run("projects re-enter the gate with the wrapper's caller", func(t *testing.T) {
		w, err := r.Users.Get(ctx, applicantToken, creator.ID)
		require.NoError(t, err)
		// A stranger's traversal only reaches the public project.
		projects, err := w.Projects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 1)

		own, err := r.Users.Get(ctx, creatorToken, creator.ID)
		require.NoError(t, err)
		projects, err = own.Projects(ctx)
		require.NoError(t, err)
		assert.Len(t, projects, 1)

		// The creator sees both through the hidden flag on the gate itself.
		all, err := r.Projects.List(ctx, creatorToken, ProjectListOptions{
			Filter: ProjectFilter{CreatorID: &creator.ID, IncludeHidden: true},
		})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("applications", func(t *testing.T) {
		w, err := r.Users.Get(ctx, applicantToken, applicant.ID)
		require.NoError(t, err)
		apps, err := w.Applications(ctx)
		require.NoError(t, err)
		assert.Len(t, apps, 1)
	})
}

func TestUserWrapperUpdateReloads(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	owner, ownerToken := seedUser(t, r, models.RoleSupporter)

	w, err := r.Users.Get(ctx, ownerToken, owner.ID)
	require.NoError(t, err)

	name := "Reloaded Name"
	require.NoError(t, w.Update(ctx, UserPatch{FullName: &name}))
	assert.Equal(t, name, w.FullName(true))
}

func TestVerifyCredentials(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()
	user, _ := seedUser(t, r, models.RoleSupporter)

	t.Run("valid pair returns system instance", func(t *testing.T) {
		w, err := r.Users.VerifyCredentials(ctx, user.Mail, testPassword)
		require.NoError(t, err)
		assert.True(t, w.IsSystem())
		assert.Equal(t, user.ID, w.ID())
	})

	t.Run("unknown mail and wrong password are indistinguishable", func(t *testing.T) {
		_, errMail := r.Users.VerifyCredentials(ctx, "nobody@example.com", testPassword)
		_, errPw := r.Users.VerifyCredentials(ctx, user.Mail, "wrong-password")
		require.True(t, apperror.IsAuthorization(errMail))
		require.True(t, apperror.IsAuthorization(errPw))
		assert.Equal(t, errMail.Error(), errPw.Error())
	})
}
