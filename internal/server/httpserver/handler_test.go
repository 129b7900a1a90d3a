package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/geotracker/internal/common"
	"github.com/dmitrijs2005/geotracker/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func newTestServer() (*HTTPServer, *fakeUsers, *fakeHistory) {
	us, hs := newFakeUsers(), &fakeHistory{}
	return NewHTTPServer(":0", logging.Discard(), us, hs, false), us, hs
}

func do(t *testing.T, s *HTTPServer, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == common.SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", common.SessionCookieName)
	return nil
}

var alice = map[string]string{
	"username": "alice", "email": "a@example.com", "password": "password1", "confimpassword": "password1",
}

func TestSignup_CreatesUserAndSetsCookie(t *testing.T) {
	s, _, _ := newTestServer()

	rec := do(t, s, http.MethodPost, "/auth/signup", alice)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, MsgSignedUp, body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@example.com", user["email"])
	assert.NotContains(t, user, "password_hash")

	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 3600, c.MaxAge)
	assert.NotEmpty(t, rec.Header().Get(headerRequestID))
}

func TestSignup_IgnoresRequestedRole(t *testing.T) {
	s, _, _ := newTestServer()
	body := map[string]string{"role": "admin"}
	for k, v := range alice {
		body[k] = v
	}

	rec := do(t, s, http.MethodPost, "/auth/signup", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "user", decode(t, rec)["user"].(map[string]any)["role"])
}

func TestSignup_Conflict(t *testing.T) {
	s, _, _ := newTestServer()
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/auth/signup", alice).Code)

	rec := do(t, s, http.MethodPost, "/auth/signup", alice)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, MsgUserExists, decode(t, rec)["message"])
}

func TestSignup_ValidationMessage(t *testing.T) {
	s, _, _ := newTestServer()

	bad := map[string]string{"username": "a", "email": "a@b", "password": "password1", "confimpassword": "password2"}
	rec := do(t, s, http.MethodPost, "/auth/signup", bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Passwords do not match", decode(t, rec)["message"])
}

func TestSignup_MalformedBody(t *testing.T) {
	s, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, MsgInvalidBody, decode(t, rec)["message"])
}

func TestLogin(t *testing.T) {
	s, _, _ := newTestServer()
	require.Equal(t, http.StatusCreated, do(t, s, http.MethodPost, "/auth/signup", alice).Code)

	t.Run("ok", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "password1"})
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, MsgLoggedIn, body["message"])
		assert.Equal(t, "tok-1", sessionCookie(t, rec).Value)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/auth/login", map[string]string{"email": "a@example.com", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, MsgInvalidLogin, decode(t, rec)["message"])
	})
}

func TestMe(t *testing.T) {
	s, _, _ := newTestServer()
	signup := do(t, s, http.MethodPost, "/auth/signup", alice)
	cookie := sessionCookie(t, signup)

	t.Run("without cookie", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, MsgNotAuthenticated, decode(t, rec)["message"])
	})

	t.Run("with cookie", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/auth/me", nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		user := decode(t, rec)["user"].(map[string]any)
		assert.Equal(t, "alice", user["username"])
	})

	t.Run("bad cookie", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/auth/me", nil, &http.Cookie{Name: common.SessionCookieName, Value: "garbage"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestMe_SessionBackendFailureIs500(t *testing.T) {
	s, us, _ := newTestServer()
	us.authErr = errBoom

	rec := do(t, s, http.MethodGet, "/auth/me", nil, &http.Cookie{Name: common.SessionCookieName, Value: "tok-1"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, MsgInternal, decode(t, rec)["message"])
}

func TestLogout_ExpiresCookie(t *testing.T) {
	s, _, _ := newTestServer()

	rec := do(t, s, http.MethodPost, "/auth/logout", struct{}{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode(t, rec))

	c := sessionCookie(t, rec)
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestHistory_RequiresSession(t *testing.T) {
	s, _, _ := newTestServer()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/history"},
		{http.MethodPost, "/history"},
		{http.MethodPost, "/history/bulk-delete"},
	} {
		rec := do(t, s, tc.method, tc.path, map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
	}
}

func TestHistory_Flow(t *testing.T) {
	s, _, _ := newTestServer()
	cookie := sessionCookie(t, do(t, s, http.MethodPost, "/auth/signup", alice))

	rec := do(t, s, http.MethodPost, "/history", map[string]any{
		"ip_address": "8.8.8.8", "city": "Mountain View", "latitude": "37.4056", "longitude": -122.0775,
	}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode(t, rec)
	assert.Equal(t, "8.8.8.8", created["ip_address"])
	assert.Equal(t, "37.4056", created["latitude"])
	assert.Equal(t, "-122.0775", created["longitude"])

	rec = do(t, s, http.MethodPost, "/history", map[string]any{"ip_address": "1.1.1.1", "latitude": ""}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, decode(t, rec), "latitude")

	rec = do(t, s, http.MethodGet, "/history", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode(t, rec)["history"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, "1.1.1.1", list[0].(map[string]any)["ip_address"])

	rec = do(t, s, http.MethodPost, "/history/bulk-delete", map[string]any{"ids": []int64{1, 2}}, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decode(t, rec)["deleted"])

	rec = do(t, s, http.MethodGet, "/history", nil, cookie)
	assert.Empty(t, decode(t, rec)["history"])
}

func TestHistory_BadRequests(t *testing.T) {
	s, _, _ := newTestServer()
	cookie := sessionCookie(t, do(t, s, http.MethodPost, "/auth/signup", alice))

	rec := do(t, s, http.MethodPost, "/history/bulk-delete", map[string]any{"ids": []int64{}}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/history", map[string]any{"ip_address": "8.8.8.8", "latitude": "north"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/history", map[string]any{"city": "x"}, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistory_ListFailureIs500(t *testing.T) {
	s, _, hs := newTestServer()
	cookie := sessionCookie(t, do(t, s, http.MethodPost, "/auth/signup", alice))
	hs.listErr = errBoom

	rec := do(t, s, http.MethodGet, "/history", nil, cookie)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	s, _, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "abc-123")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(headerRequestID))
}
