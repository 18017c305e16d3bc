package domain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// Session wraps a stored session. The token is ownership-gated: only the
// session's owner and admins ever see it through a filtered read. Sessions
// have no repository gate of their own; the session service creates and
// destroys them.
type Session struct {
	access
	rec   models.Session
	repos *Repos
}

func (r *Repos) NewSession(rec models.Session, token string) *Session {
	return &Session{access: callerAccess(token), rec: rec, repos: r}
}

func (s *Session) ID() uuid.UUID        { return s.rec.ID }
func (s *Session) CreatedAt() time.Time { return s.rec.CreatedAt }
func (s *Session) UpdatedAt() time.Time { return s.rec.UpdatedAt }

func (s *Session) Authenticate(ctx context.Context, pre *identity.Identity) error {
	return s.authenticate(ctx, s.repos.resolver, pre)
}

func (s *Session) UserID(filtered bool) uuid.UUID {
	s.filtering(filtered)
	return s.rec.UserID
}

func (s *Session) SessionToken(filtered bool) *string {
	if s.filtering(filtered) && !s.isOwnerOrAdmin(s.rec.UserID) {
		return nil
	}
	return &s.rec.Token
}

func (s *Session) Data(filtered bool) map[string]any {
	data := map[string]any{
		"id":        s.rec.ID,
		"userId":    s.rec.UserID,
		"createdAt": s.rec.CreatedAt,
		"updatedAt": s.rec.UpdatedAt,
	}
	if tok := s.SessionToken(filtered); tok != nil {
		data["token"] = *tok
	}
	return data
}

// User resolves the owning user through the user gate.
func (s *Session) User(ctx context.Context) (*User, error) {
	return s.repos.Users.Get(ctx, s.token, s.rec.UserID)
}
