package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
	"github.com/crowdbase-dev/crowdbase/internal/validate"
)

// UserRepo is the repository gate for users.
type UserRepo struct {
	repos *Repos
}

type UserFilter struct {
	Role *models.Role
	// TaskID restricts the listing to users that applied for the given task.
	// This is the only filter that opens user listing to non-admins.
	TaskID *uuid.UUID
}

type UserListOptions struct {
	Filter UserFilter
	Sort   *Sort
}

// UserValues is the candidate field set for create. Password is plaintext
// and hashed inside the gate; it is never stored as given.
type UserValues struct {
	FullName string
	Mail     string
	Gender   models.Gender
	Role     models.Role
	Password string
}

// UserPatch is a partial update; nil fields are left untouched.
type UserPatch struct {
	FullName *string
	Mail     *string
	Gender   *models.Gender
	Role     *models.Role
	Password *string
}

func (r *UserRepo) List(ctx context.Context, token string, opts UserListOptions) ([]*User, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && opts.Filter.TaskID == nil {
		return nil, apperror.NewAuthorization("listing users requires admin")
	}

	q := r.repos.db.WithContext(ctx).Model(&models.User{})
	if opts.Filter.Role != nil {
		q = q.Where("role = ?", *opts.Filter.Role)
	}
	if opts.Filter.TaskID != nil {
		q = q.Joins("JOIN applications ON applications.user_id = users.id").
			Where("applications.task_id = ?", *opts.Filter.TaskID)
	}
	q, err = applySort(q, opts.Sort, models.UserSortFields)
	if err != nil {
		return nil, err
	}

	var recs []models.User
	if err := q.Find(&recs).Error; err != nil {
		return nil, apperror.NewStorage("user listing failed", err)
	}
	return lo.Map(recs, func(rec models.User, _ int) *User {
		w := r.repos.newUser(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w
	}), nil
}

func (r *UserRepo) Get(ctx context.Context, token string, id uuid.UUID) (*User, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.userRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newUser(rec, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// Create registers a user. Without a token this is anonymous
// self-registration, restricted to non-admin roles; only an admin caller may
// create accounts with any role.
func (r *UserRepo) Create(ctx context.Context, token string, vals UserValues) (*User, error) {
	var caller *identity.Identity
	if token != "" {
		var err error
		caller, err = r.repos.resolver.Resolve(ctx, token)
		if err != nil {
			return nil, err
		}
	}

	if vals.Role == "" {
		vals.Role = models.RoleSupporter
	}
	admin := caller != nil && caller.IsAdmin()
	if !admin && vals.Role == models.RoleAdmin {
		return nil, apperror.NewAuthorization("only admins may create admin accounts")
	}

	rec := models.User{
		ID:       uuid.New(),
		FullName: vals.FullName,
		Mail:     vals.Mail,
		Gender:   vals.Gender,
		Role:     vals.Role,
	}
	if err := validate.User(rec); err != nil {
		return nil, err
	}
	if err := validate.Password(vals.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(vals.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewStorage("password hashing failed", err)
	}
	rec.PasswordHash = string(hash)

	if err := r.repos.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translateStore("user create", err, apperror.CodeMailAlreadyUsed)
	}

	w := r.repos.newUser(rec, token)
	if token != "" {
		_ = w.Authenticate(ctx, caller)
	}
	return w, nil
}

// Update merges the patch into the stored record, re-validates the merged
// result, and persists only the fields that actually changed. An empty patch
// writes nothing.
func (r *UserRepo) Update(ctx context.Context, token string, id uuid.UUID, patch UserPatch) (*User, error) {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	rec, err := r.repos.userRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && caller.ID != id {
		return nil, apperror.NewAuthorization("may only update own account")
	}
	if patch.Role != nil && *patch.Role == models.RoleAdmin && !caller.IsAdmin() {
		return nil, apperror.NewAuthorization("only admins may grant the admin role")
	}

	merged := rec
	changes := map[string]any{}
	if patch.FullName != nil && *patch.FullName != rec.FullName {
		merged.FullName = *patch.FullName
		changes["full_name"] = *patch.FullName
	}
	if patch.Mail != nil && *patch.Mail != rec.Mail {
		merged.Mail = *patch.Mail
		changes["mail"] = *patch.Mail
	}
	if patch.Gender != nil && *patch.Gender != rec.Gender {
		merged.Gender = *patch.Gender
		changes["gender"] = *patch.Gender
	}
	if patch.Role != nil && *patch.Role != rec.Role {
		merged.Role = *patch.Role
		changes["role"] = *patch.Role
	}
	if err := validate.User(merged); err != nil {
		return nil, err
	}
	if patch.Password != nil {
		if err := validate.Password(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.NewStorage("password hashing failed", err)
		}
		changes["password_hash"] = string(hash)
	}

	if len(changes) == 0 {
		w := r.repos.newUser(rec, token)
		_ = w.Authenticate(ctx, caller)
		return w, nil
	}

	err = r.repos.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(changes).Error
	if err != nil {
		return nil, translateStore("user update", err, apperror.CodeMailAlreadyUsed)
	}

	fresh, err := r.repos.userRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	w := r.repos.newUser(fresh, token)
	_ = w.Authenticate(ctx, caller)
	return w, nil
}

// VerifyCredentials checks a mail/password pair and returns a system
// instance of the matching user. System instances bypass filtering and must
// stay inside the process; callers re-fetch through the gate before anything
// is serialized. Lookup and comparison failures report the same error so the
// response does not reveal whether the mail is registered.
func (r *UserRepo) VerifyCredentials(ctx context.Context, mail, password string) (*User, error) {
	var rec models.User
	err := r.repos.db.WithContext(ctx).Where("mail = ?", mail).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewAuthorization("invalid mail or password")
	}
	if err != nil {
		return nil, apperror.NewStorage("user lookup failed", err)
	}

	sys := r.repos.systemUser(rec)
	hash := sys.PasswordHash(false)
	if bcrypt.CompareHashAndPassword([]byte(*hash), []byte(password)) != nil {
		return nil, apperror.NewAuthorization("invalid mail or password")
	}
	return sys, nil
}

func (r *UserRepo) Delete(ctx context.Context, token string, id uuid.UUID) error {
	caller, err := r.repos.resolver.RequireAuth(ctx, token)
	if err != nil {
		return err
	}
	if _, err := r.repos.userRecord(ctx, id); err != nil {
		return err
	}
	if !caller.IsAdmin() && caller.ID != id {
		return apperror.NewAuthorization("may only delete own account")
	}
	if err := r.repos.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return apperror.NewStorage("user delete failed", err)
	}
	return nil
}
