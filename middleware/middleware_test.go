package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"matrimonial/config"
	userRepo "matrimonial/database/repository/user"
	"matrimonial/models"
	"matrimonial/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "middleware-test-secret"
	config.AppConfig.LogLevel = "error"
}

type stubLoader struct {
	users map[string]models.SessionUser
	err   error
}

func (s stubLoader) Load(_ context.Context, id string) (models.SessionUser, error) {
	if s.err != nil {
		return models.SessionUser{}, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return models.SessionUser{}, userRepo.ErrUserNotFound
	}
	return u, nil
}

func authRouter(loader SessionLoader) *gin.Engine {
	r := gin.New()
	r.GET("/me", JWTAuthUserMiddleware(loader), func(c *gin.Context) {
		user := c.MustGet(utils.ContextSessionUser).(models.SessionUser)
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(utils.ContextUserID), "role": user.Role})
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthUserMiddleware(t *testing.T) {
	loader := stubLoader{users: map[string]models.SessionUser{
		"u1": {ID: "u1", Role: models.RoleMember},
	}}
	r := authRouter(loader)

	token, err := utils.GenerateToken("u1", "u1@example.com", time.Hour)
	require.NoError(t, err)
	w := get(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"member"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer garbage").Code)

	ghost, err := utils.GenerateToken("ghost", "", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+ghost).Code)

	broken := authRouter(stubLoader{err: errors.New("mongo down")})
	assert.Equal(t, http.StatusInternalServerError, get(broken, "Bearer "+token).Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:1002"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1000"), "limits are per client")
}
