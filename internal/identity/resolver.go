// Package identity resolves opaque caller tokens to the principal behind
// them. It is the single authentication point of the domain layer: every
// repository gate funnels through Resolve or RequireAuth.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Identity is the resolved principal of a request.
type Identity struct {
	ID   uuid.UUID
	Role models.Role
}

func (i *Identity) IsAdmin() bool     { return i.Role == models.RoleAdmin }
func (i *Identity) IsInitiator() bool { return i.Role == models.RoleInitiator }
func (i *Identity) IsSupporter() bool { return i.Role == models.RoleSupporter }

type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve maps a caller token to an identity. An empty token is a malformed
// request and fails; a well-formed token with no matching session resolves to
// (nil, nil) so callers can distinguish "anonymous" from "malformed".
func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, apperror.NewAuthorization("missing bearer token")
	}

	var sess models.Session
	err := r.db.WithContext(ctx).
		Joins("User").
		Where("sessions.token = ?", token).
		First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.NewStorage("session lookup failed", err)
	}

	return &Identity{ID: sess.UserID, Role: sess.User.Role}, nil
}

// RequireAuth resolves the token and fails when no identity matches.
func (r *Resolver) RequireAuth(ctx context.Context, token string) (*Identity, error) {
	id, err := r.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if id == nil {
		return nil, apperror.NewAuthorization("not authenticated")
	}
	return id, nil
}
