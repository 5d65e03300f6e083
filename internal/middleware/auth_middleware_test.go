package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/studenttrack/internal/pkg/auth"
)

func newProtectedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString("subject")})
	})
	return router
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 30 * time.Minute,
		TokenIssuer:    "studenttrack",
	})
	router := newProtectedRouter(jwtService)

	token, _, err := jwtService.GenerateAccessToken("admin")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "admin")
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 30 * time.Minute,
		TokenIssuer:    "studenttrack",
	})
	router := newProtectedRouter(jwtService)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/protected", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsForgedToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 30 * time.Minute,
		TokenIssuer:    "studenttrack",
	})
	forger := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "attacker-secret",
		AccessTokenExp: 30 * time.Minute,
		TokenIssuer:    "studenttrack",
	})
	router := newProtectedRouter(jwtService)

	forged, _, err := forger.GenerateAccessToken("admin")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
