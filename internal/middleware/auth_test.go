package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataquality/internal/middleware"
	"dataquality/internal/service"
	"dataquality/mocks"
)

func authRouter(authSvc service.AuthService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(authSvc))
	r.GET("/whoami", func(c *gin.Context) {
		id, err := middleware.GetClientID(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "name": middleware.GetClientName(c)})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	clientID := uuid.New()
	mockAuth.On("ValidateToken", "good-token").Return(&service.Claims{ClientID: clientID, ClientName: "etl"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/whoami", http.NoBody)
	req.Header.Set("Authorization", "Bearer good-token")
	authRouter(mockAuth).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"`+clientID.String()+`","name":"etl"}`, w.Body.String())
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	mockAuth.On("ValidateToken", "expired").Return(nil, errors.New("token is expired"))

	for _, header := range []string{"", "Basic abc", "Bearer expired"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/whoami", http.NoBody)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		authRouter(mockAuth).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
		assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`, header)
	}
	mockAuth.AssertNumberOfCalls(t, "ValidateToken", 1)
}

func TestGetClientName_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, middleware.GetClientName(c))

	_, err := middleware.GetClientID(c)
	assert.Error(t, err)
}
