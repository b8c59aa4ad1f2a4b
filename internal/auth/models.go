package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access class a session is scoped to. It determines which portal
// surface the session can reach and is fixed for the session's lifetime; a
// role change requires a new session.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Valid reports whether the role is one of the two known access classes.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// Credentials is the transient pair collected by a login form. It is never
// persisted and never logged.
type Credentials struct {
	Email    string
	Password string
}

// Session is the runtime proof of a successful authentication. The role comes
// from the entry point the caller used, never from the credential content.
type Session struct {
	ID                uuid.UUID
	SubjectID         string
	SubjectName       string
	Email             string
	Role              Role
	Token             string
	DeviceDisplayName string
	IssuedAt          time.Time
	ExpiresAt         time.Time
}

// Expired reports whether the session has passed its expiry instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Identity is what the external provider asserts about a verified subject.
type Identity struct {
	SubjectID   string
	Email       string
	DisplayName string
}
