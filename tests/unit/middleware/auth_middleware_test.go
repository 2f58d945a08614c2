package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gstbill/internal/domain"
	"gstbill/internal/middleware"
	"gstbill/internal/service"
	"gstbill/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func callProtected(authSvc service.AuthService, header string) (*httptest.ResponseRecorder, *gin.Context) {
	var captured *gin.Context
	r := gin.New()
	r.GET("/protected", middleware.AuthMiddleware(authSvc), func(c *gin.Context) {
		captured = c
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w, captured
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Name: "Ravi Kumar", Email: "ravi@example.com"}
	mockAuth.On("ValidateToken", "good-token").Return(claims, nil)

	w, c := callProtected(mockAuth, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, c)
	got, err := middleware.GetUserID(c)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)

	w, _ := callProtected(mockAuth, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuth.AssertNotCalled(t, "ValidateToken")
}

func TestAuthMiddleware_NotBearer(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)

	w, _ := callProtected(mockAuth, "Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuth.AssertNotCalled(t, "ValidateToken")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "stale-token").Return(nil, domain.ErrTokenExpired)

	w, _ := callProtected(mockAuth, "Bearer stale-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "garbage").Return(nil, domain.ErrUnauthorized)

	w, _ := callProtected(mockAuth, "Bearer garbage")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}
