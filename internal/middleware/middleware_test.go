package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockroom/internal/common"
	"stockroom/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret-with-enough-length"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newProtectedServer(t *testing.T) *echo.Echo {
	t.Helper()
	auth, err := NewAuthenticator(config.AuthConfig{JWTSecret: testSecret}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(auth.Close)

	e := echo.New()
	g := e.Group("/v1")
	g.Use(auth.Middleware())
	g.GET("/whoami", func(c echo.Context) error {
		userID, _ := common.GetUserIDFromContext(c.Request().Context())
		return c.String(http.StatusOK, userID)
	})
	return e
}

func TestAuthenticator_AcceptsSignedToken(t *testing.T) {
	e := newProtectedServer(t)
	token := signedToken(t, testSecret, jwt.MapClaims{
		"sub": "auditor-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "auditor-7", rec.Body.String())
}

func TestAuthenticator_RejectsMissingOrForeignToken(t *testing.T) {
	e := newProtectedServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong secret", "Bearer " + signedToken(t, "another-secret", jwt.MapClaims{"sub": "x"})},
		{"expired", "Bearer " + signedToken(t, testSecret, jwt.MapClaims{
			"sub": "x",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/whoami", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestNewAuthenticator_RequiresKeyMaterial(t *testing.T) {
	_, err := NewAuthenticator(config.AuthConfig{}, zap.NewNop())
	assert.Error(t, err)
}

func TestVersionHeader(t *testing.T) {
	vm := NewVersionMiddleware()
	sunset := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	vm.Deprecate("v0", "Use v1", &sunset)

	e := echo.New()
	e.Use(vm.APIVersionResolver())
	e.Group("/v1", vm.VersionHeader("v1")).GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("api_version").(string))
	})
	e.Group("/v0", vm.VersionHeader("v0")).GET("/ping", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "v1", rec.Body.String())
	assert.Equal(t, "v1", rec.Header().Get("X-API-Version"))
	assert.Empty(t, rec.Header().Get("X-API-Deprecated"))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v0/ping", nil))
	assert.Equal(t, "true", rec.Header().Get("X-API-Deprecated"))
	assert.Equal(t, "2027-01-01T00:00:00Z", rec.Header().Get("X-API-Sunset"))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v9/ping", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unsupported API version")
}

func TestVersionFromPath(t *testing.T) {
	assert.Equal(t, "v1", versionFromPath("/v1/items"))
	assert.Equal(t, "v12", versionFromPath("/v12"))
	assert.Equal(t, "", versionFromPath("/vault/items"))
	assert.Equal(t, "", versionFromPath("/health"))
}
