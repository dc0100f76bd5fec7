package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlacklist struct {
	tokens map[string]time.Duration
	err    error
}

func (m *memBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	m.tokens[token] = ttl
	return nil
}

func (m *memBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.tokens[token]
	return ok, nil
}

func newRouter(s *JWTService, bl TokenBlacklist, roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(s, bl), RoleAuthMiddleware(roles...), func(c *gin.Context) {
		id, _, _, role := GetCurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	return r
}

func get(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	s := newTestService(t, time.Now())
	token, _, err := s.GenerateToken(testUser)
	require.NoError(t, err)

	bl := &memBlacklist{tokens: map[string]time.Duration{}}
	r := newRouter(s, bl, "middleman")

	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"u1","role":"middleman"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, token).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer x.y.z").Code)

	require.NoError(t, bl.Add(context.Background(), token, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

func TestJWTAuthMiddlewareBlacklistFailure(t *testing.T) {
	s := newTestService(t, time.Now())
	token, _, err := s.GenerateToken(testUser)
	require.NoError(t, err)

	r := newRouter(s, &memBlacklist{err: errors.New("redis fora do ar")}, "middleman")
	assert.Equal(t, http.StatusServiceUnavailable, get(r, "Bearer "+token).Code)
}

func TestJWTAuthMiddlewareWithoutBlacklist(t *testing.T) {
	s := newTestService(t, time.Now())
	token, _, err := s.GenerateToken(testUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(newRouter(s, nil, "middleman"), "Bearer "+token).Code)
}

func TestRoleAuthMiddlewareForbidden(t *testing.T) {
	s := newTestService(t, time.Now())
	token, _, err := s.GenerateToken(testUser)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(newRouter(s, nil, "manager"), "Bearer "+token).Code)
}
