package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"

	"opsportal/internal/audit"
	"opsportal/internal/auth/device"
	"opsportal/internal/platform/metrics"
	"opsportal/pkg/email"
	pkgerrors "opsportal/pkg/errors"
	"opsportal/pkg/requestcontext"
	"opsportal/pkg/sentinel"
)

var (
	// ErrInvalidCredentials means the provider rejected the pair. No session
	// is created, no audit event is emitted, no navigation occurs.
	ErrInvalidCredentials = pkgerrors.New(pkgerrors.CodeInvalidCredentials, "invalid email or password")

	// ErrProviderUnavailable means the provider could not be reached. Same
	// non-effects as ErrInvalidCredentials; the caller may retry.
	ErrProviderUnavailable = pkgerrors.New(pkgerrors.CodeProviderUnavailable, "identity provider unavailable")
)

// TokenIssuer mints the opaque session token carried by clients.
type TokenIssuer interface {
	Issue(sessionID uuid.UUID, subjectID, role string, expiresAt time.Time) (string, error)
}

// AuditRecorder is the fire-and-forget audit side of authentication. Record
// must not block and must not surface errors into the login path.
type AuditRecorder interface {
	Record(event audit.Event)
}

// Service turns a credential pair into a role-scoped session and records the
// access transition. It keeps transport concerns out of business logic.
type Service struct {
	provider IdentityProvider
	sessions SessionStore
	tokens   TokenIssuer
	recorder AuditRecorder
	logger   *slog.Logger
	metrics  *metrics.Metrics
	ttl      time.Duration
	now      func() time.Time
}

func NewService(
	provider IdentityProvider,
	sessions SessionStore,
	tokens TokenIssuer,
	recorder AuditRecorder,
	logger *slog.Logger,
	m *metrics.Metrics,
	ttl time.Duration,
) *Service {
	return &Service{
		provider: provider,
		sessions: sessions,
		tokens:   tokens,
		recorder: recorder,
		logger:   logger,
		metrics:  m,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Test helper.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ValidateCredentials is the local fast-path check. It runs before any
// provider round trip and never reaches the network.
func ValidateCredentials(creds Credentials) error {
	if !govalidator.StringLength(creds.Email, "3", "254") || !govalidator.IsEmail(creds.Email) {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid email")
	}
	if creds.Password == "" {
		return pkgerrors.New(pkgerrors.CodeInvalidInput, "password must not be empty")
	}
	return nil
}

// Authenticate runs one fresh login attempt. The role comes from the entry
// point the caller used, never from the credential content. Each call is an
// independent attempt: repeating it with the same credentials yields a new
// session and a new login event.
func (s *Service) Authenticate(ctx context.Context, role Role, creds Credentials) (Session, error) {
	return s.AuthenticateAttempt(ctx, NewAttempt(), role, creds)
}

// AuthenticateAttempt runs a login attempt under an externally held Attempt so
// callers keeping a form open can refuse duplicate concurrent submissions.
func (s *Service) AuthenticateAttempt(ctx context.Context, attempt *Attempt, role Role, creds Credentials) (Session, error) {
	if !role.Valid() {
		return Session{}, pkgerrors.New(pkgerrors.CodeInvalidInput, "unknown entry point role")
	}
	if err := attempt.Begin(); err != nil {
		return Session{}, err
	}

	if err := ValidateCredentials(creds); err != nil {
		attempt.Finish(StateRejected)
		s.metrics.IncrementLoginFailure("validation")
		return Session{}, err
	}

	// Exactly one provider call per attempt; retries are the caller's call
	// since submissions are user-triggered.
	identity, err := s.provider.SignIn(ctx, creds.Email, creds.Password)
	if err != nil {
		attempt.Finish(StateRejected)
		return Session{}, s.rejectSignIn(ctx, role, err)
	}

	// The provider resolved, but the caller may have walked away. The effect
	// is all-or-nothing: an abandoned attempt applies no session and emits no
	// audit event.
	if ctxErr := ctx.Err(); ctxErr != nil {
		attempt.Finish(StateRejected)
		s.logger.InfoContext(ctx, "login attempt abandoned before apply",
			"role", string(role),
			"request_id", requestcontext.RequestID(ctx),
		)
		return Session{}, ctxErr
	}

	now := s.now()
	session := Session{
		ID:                uuid.New(),
		SubjectID:         identity.SubjectID,
		SubjectName:       subjectName(identity),
		Email:             identity.Email,
		Role:              role,
		DeviceDisplayName: device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		IssuedAt:          now,
		ExpiresAt:         now.Add(s.ttl),
	}

	token, err := s.tokens.Issue(session.ID, session.SubjectID, string(role), session.ExpiresAt)
	if err != nil {
		attempt.Finish(StateRejected)
		s.logger.ErrorContext(ctx, "session token issue failed", "error", err)
		return Session{}, pkgerrors.New(pkgerrors.CodeInternal, "failed to issue session token")
	}
	session.Token = token

	if err := s.sessions.Save(ctx, session); err != nil {
		attempt.Finish(StateRejected)
		s.logger.ErrorContext(ctx, "session save failed", "error", err)
		return Session{}, pkgerrors.New(pkgerrors.CodeInternal, "failed to persist session")
	}

	attempt.Finish(StateAuthenticated)

	// Fire-and-forget: audit availability is not a login precondition. The
	// timestamp is the accept instant, not the storage instant.
	s.recorder.Record(audit.Event{
		ID:        uuid.New(),
		UserType:  userTypeFor(role),
		UserName:  session.SubjectName,
		Action:    audit.ActionLogin,
		Timestamp: now,
	})

	s.metrics.IncrementLogin(string(role))
	s.logger.InfoContext(ctx, "login accepted",
		"role", string(role),
		"session_id", session.ID,
		"subject_id", session.SubjectID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return session, nil
}

// Logout destroys the session and records exactly one logout event. A session
// that is already gone yields not-found without a second event; each
// transition is audited once.
func (s *Service) Logout(ctx context.Context, sessionID uuid.UUID) error {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "session not found")
		}
		s.logger.ErrorContext(ctx, "session lookup failed", "error", err)
		return pkgerrors.New(pkgerrors.CodeInternal, "failed to load session")
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		s.logger.ErrorContext(ctx, "session delete failed", "error", err)
		return pkgerrors.New(pkgerrors.CodeInternal, "failed to destroy session")
	}

	s.recorder.Record(audit.Event{
		ID:        uuid.New(),
		UserType:  userTypeFor(session.Role),
		UserName:  session.SubjectName,
		Action:    audit.ActionLogout,
		Timestamp: s.now(),
	})

	s.metrics.IncrementSessionRevoked()
	s.logger.InfoContext(ctx, "logout accepted",
		"role", string(session.Role),
		"session_id", session.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func (s *Service) rejectSignIn(ctx context.Context, role Role, err error) error {
	switch {
	case errors.Is(err, sentinel.ErrCredentialMismatch):
		s.metrics.IncrementLoginFailure("invalid_credentials")
		s.logger.WarnContext(ctx, "login rejected",
			"role", string(role),
			"reason", "invalid_credentials",
			"request_id", requestcontext.RequestID(ctx),
		)
		return ErrInvalidCredentials
	default:
		s.metrics.IncrementLoginFailure("provider_unavailable")
		s.logger.ErrorContext(ctx, "identity provider unreachable",
			"role", string(role),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return ErrProviderUnavailable
	}
}

func subjectName(identity Identity) string {
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	return email.DisplayName(identity.Email)
}

func userTypeFor(role Role) audit.UserType {
	if role == RoleAdmin {
		return audit.UserTypeAdmin
	}
	return audit.UserTypeClient
}
