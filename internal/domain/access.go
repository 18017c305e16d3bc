package domain

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crowdbase-dev/crowdbase/internal/identity"
)

// ErrSystemInstance is returned when Authenticate is called on a wrapper that
// was created without a caller token. System instances exist only for
// internal plumbing and must never be handed to a caller.
var ErrSystemInstance = errors.New("cannot authenticate a system instance")

// access is the shared caller state composed into every entity wrapper. A
// wrapper is in one of three states: system (no token, bypasses filtering),
// unauthenticated (token held, identity not yet resolved), or authenticated.
type access struct {
	token         string
	system        bool
	caller        *identity.Identity
	authenticated bool
}

func systemAccess() access {
	return access{system: true}
}

func callerAccess(token string) access {
	return access{token: token}
}

// authenticate resolves the wrapper's token, reusing a pre-fetched identity
// when the gate already resolved it for the same request. A second call is a
// no-op. A token that resolves to no session leaves the caller nil: the
// wrapper is then authenticated as anonymous and filtering hides everything
// that is not universally visible.
func (a *access) authenticate(ctx context.Context, r *identity.Resolver, pre *identity.Identity) error {
	if a.system {
		return ErrSystemInstance
	}
	if a.authenticated {
		return nil
	}
	if pre != nil {
		a.caller = pre
		a.authenticated = true
		return nil
	}
	id, err := r.Resolve(ctx, a.token)
	if err != nil {
		return err
	}
	a.caller = id
	a.authenticated = true
	return nil
}

// IsAuthenticated reports whether the wrapper has resolved its caller.
func (a *access) IsAuthenticated() bool { return a.authenticated }

// IsSystem reports whether the wrapper bypasses filtering entirely.
func (a *access) IsSystem() bool { return a.system }

// Token returns the caller token the wrapper was constructed with.
func (a *access) Token() string { return a.token }

// filtering normalizes the requested filtered flag and raises the misuse
// warnings: an authenticated caller asking for unfiltered output, or a
// filtered read on a wrapper that never resolved its caller. Both signal a
// probable bug in the calling code, not a hard failure.
func (a *access) filtering(filtered bool) bool {
	if a.system {
		return false
	}
	if !filtered && a.authenticated {
		slog.Warn("unfiltered read requested by authenticated caller")
	}
	if filtered && !a.authenticated {
		slog.Warn("filtered read on unauthenticated wrapper")
	}
	return filtered
}

// isOwnerOrAdmin is the ownership-gated visibility predicate: the field is
// visible to the record's owner and to admins.
func (a *access) isOwnerOrAdmin(owner uuid.UUID) bool {
	if a.caller == nil {
		return false
	}
	return a.caller.ID == owner || a.caller.IsAdmin()
}
