// Package httptransport is the thin HTTP layer. Handlers delegate to domain
// services without embedding business logic so transport concerns remain
// isolated.
package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"opsportal/internal/audit"
	"opsportal/internal/auth"
	"opsportal/internal/portal"
	pkgerrors "opsportal/pkg/errors"
	"opsportal/pkg/notify"
)

// AuthService is the authentication surface the handlers depend on.
type AuthService interface {
	Authenticate(ctx context.Context, role auth.Role, creds auth.Credentials) (auth.Session, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
}

// AuditLog is the external audit query contract consumed at render time.
type AuditLog interface {
	List(ctx context.Context) ([]audit.Event, error)
}

// Handler wires domain services into HTTP endpoints.
type Handler struct {
	auth     AuthService
	auditLog AuditLog
	notifier notify.Notifier
	logger   *slog.Logger
}

func NewHandler(authSvc AuthService, auditLog AuditLog, notifier notify.Notifier, logger *slog.Logger) *Handler {
	return &Handler{
		auth:     authSvc,
		auditLog: auditLog,
		notifier: notifier,
		logger:   logger,
	}
}

// NewRouter wires all public endpoints. The two login entry points fix the
// role a resulting session is scoped to; gated surfaces re-check the session
// on every request.
func NewRouter(h *Handler, gate *SessionGate) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestMetadata)

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/portal", func(r chi.Router) {
		r.Post("/admin/login", h.handleLogin(auth.RoleAdmin))
		r.Post("/client/login", h.handleLogin(auth.RoleClient))
		r.Post("/password-reset", h.handlePasswordReset)

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireSession)
			r.Post("/logout", h.handleLogout)
			r.Get("/session", h.handleSession)
		})

		// The audit trail renders inside the admin dashboard surface, so it
		// carries that surface's gate.
		r.Group(func(r chi.Router) {
			r.Use(gate.RequireSurface(portal.DestAdminDashboard))
			r.Get("/audit", h.handleAuditLog)
		})
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *Handler) notImplemented(w http.ResponseWriter, endpoint string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotImplemented)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"message":  "not implemented",
		"endpoint": endpoint,
	})
}

// writeError centralizes domain error translation to HTTP responses so the
// JSON error envelope stays consistent. Failure behavior is always "remain on
// current screen, show message": no redirect field is ever attached here.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(pkgerrors.CodeInternal)
	message := "internal error"

	var portalErr pkgerrors.PortalError
	if errors.As(err, &portalErr) {
		status = pkgerrors.ToHTTPStatus(portalErr.Code)
		code = string(portalErr.Code)
		message = portalErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   code,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
