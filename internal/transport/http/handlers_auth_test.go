package httptransport_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"opsportal/internal/auth"
	"opsportal/internal/portal"
	"opsportal/internal/token"
	httptransport "opsportal/internal/transport/http"
	"opsportal/internal/transport/http/mocks"
	pkgerrors "opsportal/pkg/errors"
	"opsportal/pkg/notify"
	"opsportal/pkg/testutil"
)

type fixture struct {
	authSvc  *mocks.MockAuthService
	auditLog *mocks.MockAuditLog
	tokens   *token.Service
	sessions *auth.InMemorySessionStore
	router   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := slog.New(slog.DiscardHandler)

	f := &fixture{
		authSvc:  mocks.NewMockAuthService(ctrl),
		auditLog: mocks.NewMockAuditLog(ctrl),
		tokens:   token.NewService("handler-test-signing-key-32-bytes!", "opsportal-test"),
		sessions: auth.NewInMemorySessionStore(),
	}

	handler := httptransport.NewHandler(f.authSvc, f.auditLog, notify.NewLogNotifier(logger), logger)
	gate := httptransport.NewSessionGate(f.tokens, f.sessions, logger)
	f.router = httptransport.NewRouter(handler, gate)
	return f
}

// seedSession stores a live session and returns a bearer token for it.
func (f *fixture) seedSession(t *testing.T, role auth.Role) (auth.Session, string) {
	t.Helper()
	now := time.Now()
	session := auth.Session{
		ID:          uuid.New(),
		SubjectID:   "subject-1",
		SubjectName: "Jane Doe",
		Email:       "jane.doe@example.com",
		Role:        role,
		IssuedAt:    now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, f.sessions.Save(context.Background(), session))

	bearer, err := f.tokens.Issue(session.ID, session.SubjectID, string(session.Role), session.ExpiresAt)
	require.NoError(t, err)
	return session, bearer
}

func TestHandleLogin_Success(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	session := auth.Session{
		ID:        uuid.New(),
		SubjectID: "subject-1",
		Role:      auth.RoleAdmin,
		Token:     "opaque-token",
		IssuedAt:  now,
		ExpiresAt: now.Add(12 * time.Hour),
	}

	f.authSvc.EXPECT().
		Authenticate(gomock.Any(), auth.RoleAdmin, auth.Credentials{
			Email:    "jane.doe@example.com",
			Password: "s3cret",
		}).
		Return(session, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/admin/login", map[string]string{
		"email":    "jane.doe@example.com",
		"password": "s3cret",
	})
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, session.ID.String(), (*resp)["session_id"])
	assert.Equal(t, "opaque-token", (*resp)["token"])
	assert.Equal(t, "admin", (*resp)["role"])
	assert.Equal(t, string(portal.DestAdminDashboard), (*resp)["destination"])
}

func TestHandleLogin_EntryPointFixesRole(t *testing.T) {
	f := newFixture(t)
	session := auth.Session{
		ID:        uuid.New(),
		SubjectID: "subject-2",
		Role:      auth.RoleClient,
		Token:     "opaque-token",
		ExpiresAt: time.Now().Add(time.Hour),
	}

	// The client entry point asks for a client session; credential content
	// cannot steer the role.
	f.authSvc.EXPECT().
		Authenticate(gomock.Any(), auth.RoleClient, gomock.Any()).
		Return(session, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/client/login", map[string]string{
		"email":    "admin@example.com",
		"password": "s3cret",
	})
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, string(portal.DestClientDashboard), (*resp)["destination"])
}

func TestHandleLogin_MalformedBody(t *testing.T) {
	f := newFixture(t)
	// No Authenticate expectation: a body that fails to decode never reaches
	// the service.
	req := testutil.NewRequestWithBody(t, http.MethodPost, "/portal/admin/login", "{not json")
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, string(pkgerrors.CodeInvalidInput))
}

func TestHandleLogin_ValidationError(t *testing.T) {
	f := newFixture(t)
	f.authSvc.EXPECT().
		Authenticate(gomock.Any(), auth.RoleClient, gomock.Any()).
		Return(auth.Session{}, pkgerrors.New(pkgerrors.CodeInvalidInput, "email must be a valid address"))

	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/client/login", map[string]string{
		"email":    "not-an-email",
		"password": "s3cret",
	})
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, string(pkgerrors.CodeInvalidInput))
}

func TestHandleLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	f.authSvc.EXPECT().
		Authenticate(gomock.Any(), auth.RoleAdmin, gomock.Any()).
		Return(auth.Session{}, auth.ErrInvalidCredentials)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/admin/login", map[string]string{
		"email":    "jane.doe@example.com",
		"password": "wrong",
	})
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	testutil.AssertErrorCode(t, rr, string(pkgerrors.CodeInvalidCredentials))

	// Failure keeps the caller on the current screen: no destination, no
	// redirect.
	resp := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.NotContains(t, *resp, "destination")
	assert.NotContains(t, *resp, "redirect")
}

func TestHandleLogin_ProviderUnavailable(t *testing.T) {
	f := newFixture(t)
	f.authSvc.EXPECT().
		Authenticate(gomock.Any(), auth.RoleClient, gomock.Any()).
		Return(auth.Session{}, auth.ErrProviderUnavailable)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/client/login", map[string]string{
		"email":    "jane.doe@example.com",
		"password": "s3cret",
	})
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertErrorCode(t, rr, string(pkgerrors.CodeProviderUnavailable))
}

func TestHandleLogout(t *testing.T) {
	f := newFixture(t)
	session, bearer := f.seedSession(t, auth.RoleClient)

	f.authSvc.EXPECT().Logout(gomock.Any(), session.ID).Return(nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/logout", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, string(portal.DestClientLogin), (*resp)["redirect"])
}

func TestHandleLogout_WithoutSession(t *testing.T) {
	f := newFixture(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/logout", nil)
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestHandleSession(t *testing.T) {
	f := newFixture(t)
	session, bearer := f.seedSession(t, auth.RoleAdmin)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/portal/session", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]any](t, rr)
	assert.Equal(t, session.ID.String(), (*resp)["session_id"])
	assert.Equal(t, "Jane Doe", (*resp)["subject_name"])
	assert.Equal(t, string(portal.DestAdminDashboard), (*resp)["destination"])
}

func TestHandleSession_ExpiredToken(t *testing.T) {
	f := newFixture(t)
	session, _ := f.seedSession(t, auth.RoleAdmin)
	expired, err := f.tokens.Issue(session.ID, session.SubjectID, string(session.Role), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	req := testutil.NewJSONRequest(t, http.MethodGet, "/portal/session", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestHandleSession_RevokedSession(t *testing.T) {
	f := newFixture(t)
	session, bearer := f.seedSession(t, auth.RoleClient)
	require.NoError(t, f.sessions.Delete(context.Background(), session.ID))

	// The token is still cryptographically valid; the store lookup is what
	// rejects it.
	req := testutil.NewJSONRequest(t, http.MethodGet, "/portal/session", nil)
	req.Header.Set("Authorization", "Bearer "+bearer)
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestHandlePasswordReset_NotImplemented(t *testing.T) {
	f := newFixture(t)
	req := testutil.NewJSONRequest(t, http.MethodPost, "/portal/password-reset", map[string]string{
		"email": "jane.doe@example.com",
	})
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusNotImplemented)
}

func TestHandleHealth(t *testing.T) {
	f := newFixture(t)
	req := testutil.NewJSONRequest(t, http.MethodGet, "/healthz", nil)
	rr := testutil.DoRequest(f.router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[map[string]string](t, rr)
	assert.Equal(t, "ok", (*resp)["status"])
}
