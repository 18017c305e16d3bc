package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// User wraps a stored user record together with the caller viewing it.
// Mail and gender are ownership-gated; the password hash is returned only on
// unfiltered reads and never to external callers.
type User struct {
	access
	rec   models.User
	repos *Repos
}

func (r *Repos) newUser(rec models.User, token string) *User {
	return &User{access: callerAccess(token), rec: rec, repos: r}
}

func (r *Repos) systemUser(rec models.User) *User {
	return &User{access: systemAccess(), rec: rec, repos: r}
}

func (u *User) ID() uuid.UUID        { return u.rec.ID }
func (u *User) CreatedAt() time.Time { return u.rec.CreatedAt }
func (u *User) UpdatedAt() time.Time { return u.rec.UpdatedAt }

// Authenticate resolves the wrapper's caller, reusing pre when supplied.
func (u *User) Authenticate(ctx context.Context, pre *identity.Identity) error {
	return u.authenticate(ctx, u.repos.resolver, pre)
}

func (u *User) FullName(filtered bool) string {
	u.filtering(filtered)
	return u.rec.FullName
}

func (u *User) Role(filtered bool) models.Role {
	u.filtering(filtered)
	return u.rec.Role
}

func (u *User) Mail(filtered bool) *string {
	if u.filtering(filtered) && !u.isOwnerOrAdmin(u.rec.ID) {
		return nil
	}
	return &u.rec.Mail
}

func (u *User) Gender(filtered bool) *models.Gender {
	if u.filtering(filtered) && !u.isOwnerOrAdmin(u.rec.ID) {
		return nil
	}
	if u.rec.Gender == "" {
		return nil
	}
	return &u.rec.Gender
}

// PasswordHash is never returned on a filtered read, for any caller.
func (u *User) PasswordHash(filtered bool) *string {
	if u.filtering(filtered) {
		return nil
	}
	return &u.rec.PasswordHash
}

// Data returns the caller-dependent projection of the record.
func (u *User) Data(filtered bool) map[string]any {
	data := map[string]any{
		"id":        u.rec.ID,
		"fullName":  u.rec.FullName,
		"role":      u.rec.Role,
		"createdAt": u.rec.CreatedAt,
		"updatedAt": u.rec.UpdatedAt,
	}
	if mail := u.Mail(filtered); mail != nil {
		data["mail"] = *mail
	}
	if gender := u.Gender(filtered); gender != nil {
		data["gender"] = *gender
	}
	if hash := u.PasswordHash(filtered); hash != nil {
		data["passwordHash"] = *hash
	}
	return data
}

// Projects lists the projects created by this user, re-entering the project
// gate so authorization is evaluated for the wrapper's own caller.
func (u *User) Projects(ctx context.Context) ([]*Project, error) {
	id := u.rec.ID
	return u.repos.Projects.List(ctx, u.token, ProjectListOptions{
		Filter: ProjectFilter{CreatorID: &id},
	})
}

// Applications lists this user's task applications via the application gate.
func (u *User) Applications(ctx context.Context) ([]*Application, error) {
	id := u.rec.ID
	return u.repos.Applications.List(ctx, u.token, ApplicationListOptions{
		Filter: ApplicationFilter{UserID: &id},
	})
}

// Update delegates to the user gate and reloads the wrapper on success.
func (u *User) Update(ctx context.Context, patch UserPatch) error {
	fresh, err := u.repos.Users.Update(ctx, u.token, u.rec.ID, patch)
	if err != nil {
		return err
	}
	u.rec = fresh.rec
	return nil
}

// Delete delegates to the user gate.
func (u *User) Delete(ctx context.Context) error {
	return u.repos.Users.Delete(ctx, u.token, u.rec.ID)
}
