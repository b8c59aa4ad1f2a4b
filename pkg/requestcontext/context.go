// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets these; services read them without
// importing net/http.
package requestcontext

import (
	"context"

	"github.com/google/uuid"
)

// Context key types (unexported for encapsulation).
type (
	requestIDKey struct{}
	userAgentKey struct{}
	sessionIDKey struct{}
	subjectIDKey struct{}
	roleKey      struct{}
)

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID = requestIDKey{}
	ContextKeyUserAgent = userAgentKey{}
	ContextKeySessionID = sessionIDKey{}
	ContextKeySubjectID = subjectIDKey{}
	ContextKeyRole      = roleKey{}
)

// RequestID retrieves the correlation ID for the current request.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// UserAgent retrieves the raw User-Agent header captured by middleware.
func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(ContextKeyUserAgent).(string); ok {
		return ua
	}
	return ""
}

// WithUserAgent injects a User-Agent value into the context.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, ContextKeyUserAgent, ua)
}

// SessionID retrieves the authenticated session ID, or uuid.Nil if unset.
func SessionID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(ContextKeySessionID).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// WithSessionID injects an authenticated session ID into the context.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, id)
}

// SubjectID retrieves the authenticated subject ID.
func SubjectID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeySubjectID).(string); ok {
		return id
	}
	return ""
}

// WithSubjectID injects an authenticated subject ID into the context.
func WithSubjectID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeySubjectID, id)
}

// Role retrieves the authenticated role string ("admin" or "client").
func Role(ctx context.Context) string {
	if role, ok := ctx.Value(ContextKeyRole).(string); ok {
		return role
	}
	return ""
}

// WithRole injects an authenticated role into the context.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ContextKeyRole, role)
}
