package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/linkpilot/linkpilot-api/internal/domain/auth"
	"github.com/linkpilot/linkpilot-api/internal/service"
)

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Login(t *testing.T) {
	auth := newStubAuthService()
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=/brands", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://idp.example.com/authorize", rec.Header().Get("Location"))

	state := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, state)
	assert.Equal(t, "state-1", state.Value)
	assert.True(t, state.HttpOnly)

	nonce := cookieByName(t, rec, "oauth_nonce")
	require.NotNil(t, nonce)
	assert.Equal(t, "nonce-1", nonce.Value)

	redirect := cookieByName(t, rec, "post_login_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/brands", redirect.Value)
}

func TestAuthHandlers_Login_RejectsAbsoluteRedirect(t *testing.T) {
	auth := newStubAuthService()
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodGet, "/auth/login?redirect_uri=https://evil.example.com/", nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	redirect := cookieByName(t, rec, "post_login_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/", redirect.Value)
}

func TestAuthHandlers_Callback(t *testing.T) {
	auth := newStubAuthService()
	auth.CompleteLoginFunc = func(_ context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
		assert.Equal(t, "code-1", input.Code)
		assert.Equal(t, "state-1", input.State)
		assert.Equal(t, "nonce-1", input.Nonce)
		return &service.CompleteLoginResult{
			Session: domainauth.Session{
				ID:        "sess-1",
				UserID:    "user-1",
				Role:      domainauth.RoleSEO,
				ExpiresAt: time.Now().Add(time.Hour),
			},
		}, nil
	}
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1&state=state-1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "nonce-1"})
	req.AddCookie(&http.Cookie{Name: "post_login_redirect", Value: "/brands"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/brands", rec.Header().Get("Location"))

	session := cookieByName(t, rec, "session_id")
	require.NotNil(t, session)
	assert.Equal(t, "sess-1", session.Value)
	assert.True(t, session.HttpOnly)

	// Temporary OAuth cookies are cleared once the flow completes.
	state := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, state)
	assert.Empty(t, state.Value)
	assert.Negative(t, state.MaxAge)
}

func TestAuthHandlers_Callback_StateMismatch(t *testing.T) {
	h := &AuthHandlers{Svc: newStubAuthService()}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=code-1&state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "state-1"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_state")
}

func TestAuthHandlers_Callback_MissingCode(t *testing.T) {
	h := &AuthHandlers{Svc: newStubAuthService()}

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=state-1", nil)
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_code")
}

func TestAuthHandlers_Logout(t *testing.T) {
	auth := newStubAuthService()
	auth.addSession("sess-1", domainauth.RoleWriter)
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"sess-1"}, auth.LogoutCalls)

	cleared := cookieByName(t, rec, "session_id")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestAuthHandlers_Logout_NoCookieIsFine(t *testing.T) {
	auth := newStubAuthService()
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, auth.LogoutCalls)
}

func TestAuthHandlers_Status_Authenticated(t *testing.T) {
	auth := newStubAuthService()
	auth.addSession("sess-1", domainauth.RoleAdmin)
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}

func TestAuthHandlers_Status_ExpiredSessionClearsCookie(t *testing.T) {
	auth := newStubAuthService()
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "stale"})
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	cleared := cookieByName(t, rec, "session_id")
	require.NotNil(t, cleared)
	assert.Negative(t, cleared.MaxAge)
}
