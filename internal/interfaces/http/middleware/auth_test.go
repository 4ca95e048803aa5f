package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocrm/internal/infrastructure/auth"
	"autocrm/internal/shared/authorization"
	"autocrm/internal/shared/constants"
	"autocrm/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any)                   {}
func (nopLogger) Info(msg string, args ...any)                    {}
func (nopLogger) Warn(msg string, args ...any)                    {}
func (nopLogger) Error(msg string, args ...any)                   {}
func (nopLogger) Fatal(msg string, args ...any)                   {}
func (n nopLogger) With(args ...any) logger.Interface             { return n }
func (n nopLogger) Named(name string) logger.Interface            { return n }
func (nopLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (nopLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (nopLogger) Fatalw(msg string, keysAndValues ...interface{}) {}

func newAuthTestEngine(t *testing.T) (*gin.Engine, *auth.JWTService, *gin.Context) {
	t.Helper()

	jwtService := auth.NewJWTService("test-secret", 15, 7)
	mw := NewAuthMiddleware(jwtService, nopLogger{})

	captured := &gin.Context{}
	engine := gin.New()
	engine.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		captured.Keys = c.Copy().Keys
		c.Status(http.StatusOK)
	})

	return engine, jwtService, captured
}

func TestRequireAuth_MissingToken(t *testing.T) {
	engine, _, _ := newAuthTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidBearerToken(t *testing.T) {
	engine, jwtService, captured := newAuthTestEngine(t)

	pair, err := jwtService.Generate(7, 3, authorization.RoleAgent)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), captured.GetUint(constants.ContextKeyUserID))
	assert.Equal(t, uint(3), captured.GetUint(constants.ContextKeyOrgID))
	assert.Equal(t, "agent", captured.GetString(constants.ContextKeyUserRole))
}

func TestRequireAuth_QueryParamToken(t *testing.T) {
	// EventSource cannot set headers, so the SSE routes pass the token in
	// the query string.
	engine, jwtService, captured := newAuthTestEngine(t)

	pair, err := jwtService.Generate(7, 3, authorization.RoleCustomer)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?access_token="+pair.AccessToken, nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(7), captured.GetUint(constants.ContextKeyUserID))
}

func TestRequireAuth_RejectsRefreshToken(t *testing.T) {
	engine, jwtService, _ := newAuthTestEngine(t)

	pair, err := jwtService.Generate(7, 3, authorization.RoleAgent)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	engine, _, _ := newAuthTestEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
