package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"botrental/internal/cache"
	"botrental/internal/domain"
	"botrental/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUserReader struct {
	users map[int64]*domain.User
}

func (r *stubUserReader) GetByTelegramID(_ context.Context, telegramID int64) (*domain.User, error) {
	return r.users[telegramID], nil
}

func newAuthMiddlewareFixture(t *testing.T) (*gin.Engine, *service.TokenService, *stubUserReader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	c := cache.NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	tokens := service.NewTokenService("a", "r", 15*time.Minute, time.Hour)
	reader := &stubUserReader{users: map[int64]*domain.User{}}
	auth := service.NewAuthService(reader, tokens, c, time.Minute)

	r := gin.New()
	r.GET("/protected", JWT(auth), func(c *gin.Context) {
		user, _ := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"telegram_id": user.TelegramID.Int64()})
	})
	r.GET("/admin", JWT(auth), RequireRole(domain.RoleAdmin, domain.RoleDev), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, tokens, reader
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAllowsValidToken(t *testing.T) {
	r, tokens, reader := newAuthMiddlewareFixture(t)

	u, _ := domain.NewUser(111)
	reader.users[111] = u
	access, _, err := tokens.CreateTokens(111)
	require.NoError(t, err)

	w := doGet(r, "/protected", access)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTRejectsMissingOrBadToken(t *testing.T) {
	r, _, _ := newAuthMiddlewareFixture(t)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", "garbage").Code)
}

func TestJWTRejectsUnknownSubject(t *testing.T) {
	r, tokens, _ := newAuthMiddlewareFixture(t)

	access, _, err := tokens.CreateTokens(404)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", access).Code)
}

func TestJWTRejectsDeletedUser(t *testing.T) {
	r, tokens, reader := newAuthMiddlewareFixture(t)

	u, _ := domain.NewUser(111)
	require.NoError(t, u.Delete())
	reader.users[111] = u
	access, _, err := tokens.CreateTokens(111)
	require.NoError(t, err)

	// Deleted accounts look exactly like invalid credentials.
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "/protected", access).Code)
}

func TestJWTForbidsBlockedUser(t *testing.T) {
	r, tokens, reader := newAuthMiddlewareFixture(t)

	u, _ := domain.NewUser(111)
	u.ID = 1
	_, err := u.Block(7, "spam", 99)
	require.NoError(t, err)
	reader.users[111] = u
	access, _, err := tokens.CreateTokens(111)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/protected", access).Code)
}

func TestRequireRole(t *testing.T) {
	r, tokens, reader := newAuthMiddlewareFixture(t)

	plain, _ := domain.NewUser(111)
	reader.users[111] = plain
	admin, _ := domain.NewUser(222)
	admin.Role = domain.RoleAdmin
	reader.users[222] = admin

	plainToken, _, err := tokens.CreateTokens(111)
	require.NoError(t, err)
	adminToken, _, err := tokens.CreateTokens(222)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, doGet(r, "/admin", plainToken).Code)
	assert.Equal(t, http.StatusOK, doGet(r, "/admin", adminToken).Code)
}
