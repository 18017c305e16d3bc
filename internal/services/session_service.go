package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
	"github.com/crowdbase-dev/crowdbase/internal/config"
	"github.com/crowdbase-dev/crowdbase/internal/domain"
	"github.com/crowdbase-dev/crowdbase/internal/models"
)

// SessionService owns the session lifecycle: registration, login, logout.
// The token it issues is a signed JWT, but the identity resolver matches the
// full token string against the sessions table, so logging out actually
// revokes the token.
type SessionService struct {
	db    *gorm.DB
	cfg   *config.Config
	repos *domain.Repos
}

func NewSessionService(db *gorm.DB, cfg *config.Config, repos *domain.Repos) *SessionService {
	return &SessionService{db: db, cfg: cfg, repos: repos}
}

// Register creates the account through the user gate (anonymous
// self-registration rules apply) and immediately opens a session for it.
func (s *SessionService) Register(ctx context.Context, vals domain.UserValues) (*domain.User, string, error) {
	user, err := s.repos.Users.Create(ctx, "", vals)
	if err != nil {
		return nil, "", err
	}
	token, err := s.createSession(ctx, user.ID())
	if err != nil {
		return nil, "", err
	}
	// Re-fetch through the gate so the returned wrapper carries the new
	// session as its caller.
	authed, err := s.repos.Users.Get(ctx, token, user.ID())
	if err != nil {
		return nil, "", err
	}
	return authed, token, nil
}

// Login verifies credentials and opens a new session. Existing sessions stay
// valid; one user may hold several.
func (s *SessionService) Login(ctx context.Context, mail, password string) (*domain.User, string, error) {
	verified, err := s.repos.Users.VerifyCredentials(ctx, mail, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.createSession(ctx, verified.ID())
	if err != nil {
		return nil, "", err
	}
	user, err := s.repos.Users.Get(ctx, token, verified.ID())
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes exactly the presented session.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if _, err := s.repos.Resolver().RequireAuth(ctx, token); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{}).Error
	if err != nil {
		return apperror.NewStorage("session delete failed", err)
	}
	return nil
}

// Sessions lists the caller's own open sessions.
func (s *SessionService) Sessions(ctx context.Context, token string) ([]*domain.Session, error) {
	caller, err := s.repos.Resolver().RequireAuth(ctx, token)
	if err != nil {
		return nil, err
	}
	var recs []models.Session
	err = s.db.WithContext(ctx).
		Where("user_id = ?", caller.ID).
		Order("created_at DESC").
		Find(&recs).Error
	if err != nil {
		return nil, apperror.NewStorage("session listing failed", err)
	}

	sessions := make([]*domain.Session, 0, len(recs))
	for _, rec := range recs {
		w := s.repos.NewSession(rec, token)
		if err := w.Authenticate(ctx, caller); err != nil {
			return nil, err
		}
		sessions = append(sessions, w)
	}
	return sessions, nil
}

func (s *SessionService) createSession(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.New()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"jti": sessionID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(s.cfg.SessionExpiry).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", apperror.NewStorage("session token signing failed", err)
	}

	rec := models.Session{
		ID:     sessionID,
		Token:  token,
		UserID: userID,
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return "", apperror.NewStorage("session create failed", err)
	}
	return token, nil
}
