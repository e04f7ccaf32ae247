package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tasktracker/internal/domain"
	"tasktracker/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type stubUsers map[int64]*domain.User

func (s stubUsers) ResolveUser(_ context.Context, id int64) (*domain.User, error) {
	return s[id], nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

// newEngine wires LoadSession and the given guard in front of a 200 handler.
func newEngine(m *session.Manager, users stubUsers, guard gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(LoadSession(m, users))
	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	r.GET("/page", guard, ok)
	r.GET("/api/thing", guard, ok)
	return r
}

func cookieFor(t *testing.T, m *session.Manager, userID int64) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s := m.Load(req)
	s.SetUserID(userID)
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, s))
	return rec.Result().Cookies()[0]
}

func do(r http.Handler, path string, ck *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if ck != nil {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestLoginRequired(t *testing.T) {
	m := session.NewManager("secret", session.Options{})
	users := stubUsers{1: {ID: 1, Username: "alice"}}
	r := newEngine(m, users, LoginRequired())

	rec := do(r, "/page", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/auth/login", rec.Header().Get("Location"))

	rec = do(r, "/api/thing", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"Login required."}`, rec.Body.String())

	rec = do(r, "/page", cookieFor(t, m, 1))
	require.Equal(t, http.StatusOK, rec.Code)

	// a deleted account degrades to anonymous
	rec = do(r, "/api/thing", cookieFor(t, m, 99))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRequired(t *testing.T) {
	m := session.NewManager("secret", session.Options{})
	users := stubUsers{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "root", IsAdmin: true},
	}
	r := newEngine(m, users, AdminRequired())

	rec := do(r, "/page", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/auth/login", rec.Header().Get("Location"))

	rec = do(r, "/page", cookieFor(t, m, 1))
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
	// the flash rides along in a rewritten cookie
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	flashes := m.Load(req).PopFlashes()
	require.Equal(t, "Admin access required.", flashes[0].Message)

	rec = do(r, "/api/thing", cookieFor(t, m, 1))
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(r, "/api/thing", cookieFor(t, m, 2))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestWantsJSON(t *testing.T) {
	cases := []struct {
		path, contentType, accept string
		want                      bool
	}{
		{"/api/tasks", "", "", true},
		{"/auth/api/me", "", "", true},
		{"/auth/login", "application/json", "", true},
		{"/auth/login", "application/x-www-form-urlencoded", "text/html,application/xhtml+xml", false},
		{"/", "", "application/json", true},
		{"/", "", "", false},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, tc.path, nil)
		if tc.contentType != "" {
			req.Header.Set("Content-Type", tc.contentType)
		}
		if tc.accept != "" {
			req.Header.Set("Accept", tc.accept)
		}
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		require.Equal(t, tc.want, WantsJSON(c), tc.path)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://app.example.com"))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
