// File: internal/middleware/auth_test.go
package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect_backend/internal/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeTokenService struct {
	validUserID uuid.UUID
	validToken  string
}

func (f *fakeTokenService) GenerateToken(userID uuid.UUID) (string, time.Time, error) {
	return f.validToken, time.Now().Add(time.Hour), nil
}

func (f *fakeTokenService) ValidateToken(token string) (*shared.Claims, error) {
	if token == f.validToken {
		return &shared.Claims{UserID: f.validUserID}, nil
	}
	return nil, errors.New("invalid token")
}

var _ shared.TokenService = (*fakeTokenService)(nil)

func setupAuthRouter(t *testing.T) (*gin.Engine, *fakeTokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := &fakeTokenService{validUserID: uuid.New(), validToken: "good-token"}
	logger, _ := zap.NewDevelopment()

	router := gin.New()
	router.GET("/protected", AuthMiddleware(tokens, logger), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": GetUserIDFromContext(c).String()})
	})
	return router, tokens
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No token, authorization denied.")
}

func TestAuthMiddleware_BadHeaderFormat(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Bearer")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Bearer bad-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is not valid.")
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router, tokens := setupAuthRouter(t)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Bearer good-token")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), tokens.validUserID.String())
}

func TestGetUserIDFromContext_Fallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uuid.Nil, GetUserIDFromContext(c))

	c.Set(UserIDKey, "not-a-uuid")
	assert.Equal(t, uuid.Nil, GetUserIDFromContext(c))
}
