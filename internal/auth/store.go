package auth

import (
	"context"

	"github.com/google/uuid"

	"opsportal/pkg/sentinel"
)

// ErrSessionNotFound keeps storage-specific misses consistent across
// implementations. It wraps the infrastructure sentinel so callers can match
// either.
var ErrSessionNotFound = sentinel.ErrNotFound

// SessionStore holds live sessions. A session is owned by one authenticated
// context; the store exists so gating can check liveness and revocation on
// every navigation, not only at sign-in.
type SessionStore interface {
	Save(ctx context.Context, session Session) error
	FindByID(ctx context.Context, id uuid.UUID) (Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
