package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"opsportal/internal/auth"
	"opsportal/internal/portal"
	"opsportal/internal/token"
	"opsportal/pkg/requestcontext"
)

// SessionSource looks up live sessions for gating. Gating hits the store on
// every navigation so out-of-band revocation takes effect immediately.
type SessionSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (auth.Session, error)
}

// TokenValidator verifies session tokens presented by clients.
type TokenValidator interface {
	Validate(tokenString string) (*token.Claims, error)
}

type sessionCtxKey struct{}

// SessionFromContext returns the session resolved by the gating middleware.
func SessionFromContext(ctx context.Context) (auth.Session, bool) {
	session, ok := ctx.Value(sessionCtxKey{}).(auth.Session)
	return session, ok
}

// RequestMetadata stamps each request with a correlation ID and captures the
// User-Agent for downstream session labeling.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
		ctx = requestcontext.WithUserAgent(ctx, r.UserAgent())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionGate resolves bearer tokens into live sessions and gates surfaces by
// role.
type SessionGate struct {
	tokens   TokenValidator
	sessions SessionSource
	logger   *slog.Logger
	now      func() time.Time
}

func NewSessionGate(tokens TokenValidator, sessions SessionSource, logger *slog.Logger) *SessionGate {
	return &SessionGate{
		tokens:   tokens,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the gate clock. Test helper.
func (g *SessionGate) WithClock(now func() time.Time) *SessionGate {
	g.now = now
	return g
}

// resolve turns the Authorization header into a live session, or nil when the
// caller has none. Token validation failures and store misses both resolve to
// nil: the caller simply has no session.
func (g *SessionGate) resolve(r *http.Request) *auth.Session {
	authHeader := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || raw == "" {
		return nil
	}

	claims, err := g.tokens.Validate(raw)
	if err != nil {
		g.logger.WarnContext(r.Context(), "rejected session token",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		return nil
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil
	}

	session, err := g.sessions.FindByID(r.Context(), sessionID)
	if err != nil {
		return nil
	}
	if session.Expired(g.now()) {
		return nil
	}
	return &session
}

func withSession(ctx context.Context, session auth.Session) context.Context {
	ctx = context.WithValue(ctx, sessionCtxKey{}, session)
	ctx = requestcontext.WithSessionID(ctx, session.ID)
	ctx = requestcontext.WithSubjectID(ctx, session.SubjectID)
	ctx = requestcontext.WithRole(ctx, string(session.Role))
	return ctx
}

// RequireSession admits any live session regardless of role.
func (g *SessionGate) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := g.resolve(r)
		if session == nil {
			writeUnauthorized(w, "")
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), *session)))
	})
}

// RequireSurface gates one portal surface. The check runs on every navigation,
// not only at sign-in; a missing, expired, or wrong-role session is redirected
// to the surface's login entry point.
func (g *SessionGate) RequireSurface(surface portal.Destination) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := g.resolve(r)
			if dest := portal.Gate(session, surface, g.now()); dest != surface {
				writeUnauthorized(w, string(dest))
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), *session)))
		})
	}
}

// writeUnauthorized rejects the request, optionally naming the login entry
// point the caller should be redirected to.
func writeUnauthorized(w http.ResponseWriter, redirect string) {
	payload := map[string]string{"error": "unauthorized"}
	if redirect != "" {
		payload["redirect"] = redirect
	}
	writeJSON(w, http.StatusUnauthorized, payload)
}
