package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-recommendation-service/internal/auth"
	"movie-recommendation-service/internal/models"
)

func newTestApp(t *testing.T) (*fiber.App, *auth.JWTManager) {
	t.Helper()
	jwtm, err := auth.NewJWTManager("test-secret", time.Hour)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", Authenticate(jwtm), func(c fiber.Ctx) error {
		return c.SendString(UserID(c) + ":" + Role(c))
	})
	app.Get("/admin", Authenticate(jwtm), RequireAdmin(), func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, jwtm
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestAuthenticate_TokenSources(t *testing.T) {
	app, jwtm := newTestApp(t)
	token, err := jwtm.IssueToken("u1", models.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }},
		{"lowercase scheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer "+token) }},
		{"raw header", func(r *http.Request) { r.Header.Set("Authorization", token) }},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: token}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			tt.setup(req)
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "u1:user", body(t, resp))
		})
	}
}

func TestAuthenticate_Rejects(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body(t, resp), "no token provided")

	other, err := auth.NewJWTManager("another-secret", time.Hour)
	require.NoError(t, err)
	forged, err := other.IssueToken("u1", models.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAdmin(t *testing.T) {
	app, jwtm := newTestApp(t)

	userToken, _ := jwtm.IssueToken("u1", models.RoleUser)
	adminToken, _ := jwtm.IssueToken("a1", models.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, body(t, resp), "admins only")

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimiter_NilRedisPassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(NewRateLimiter(nil, 1, 60).Handler())
	app.Get("/", func(c fiber.Ctx) error { return c.SendString("ok") })

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"))
	}
}

func TestMetrics_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/movies/:id", func(c fiber.Ctx) error { return c.Status(http.StatusTeapot).SendString("x") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movies/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
