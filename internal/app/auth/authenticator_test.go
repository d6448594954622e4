package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/mocks"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/diillson/dancart-api/pkg/cache"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type sessionFixture struct {
	db    *gorm.DB
	users *auth.UserService
	authn *auth.SessionAuthenticator
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	logger := testutils.TestLogger(t)
	db := testutils.NewTestDB(t)

	keys, err := security.NewKeyManager([]byte(testSecret), logger)
	require.NoError(t, err)

	users := auth.NewUserService(database.NewUserRepository(db, logger), "owner-1", logger)
	authn := auth.NewSessionAuthenticator(keys, users, cache.NewMemoryCache(time.Minute, time.Minute, nil, logger), auth.SessionOptions{
		CookieName:      "app_session_id",
		SessionDuration: time.Hour,
		UserCacheTTL:    time.Minute,
	}, logger)

	return &sessionFixture{db: db, users: users, authn: authn}
}

func TestSessionAuthenticator_NoCredential(t *testing.T) {
	f := newSessionFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/trpc/auth.me", nil)

	user, err := f.authn.Authenticate(context.Background(), req)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, auth.ErrNoCredential)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestSessionAuthenticator_InvalidToken(t *testing.T) {
	f := newSessionFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	user, err := f.authn.Authenticate(context.Background(), req)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestSessionAuthenticator_Cookie(t *testing.T) {
	f := newSessionFixture(t)
	ctx := context.Background()

	token, err := f.authn.IssueToken("aluna-7", "Clara")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(f.authn.SessionCookie(req, token))

	user, err := f.authn.Authenticate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "aluna-7", user.OpenID)
	assert.Equal(t, "Clara", *user.Name)
	assert.Equal(t, model.RoleUser, user.Role)

	// a segunda chamada vem do cache
	require.NoError(t, f.db.Where("open_id = ?", "aluna-7").Delete(&model.User{}).Error)
	again, err := f.authn.Authenticate(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestSessionAuthenticator_BearerOwner(t *testing.T) {
	f := newSessionFixture(t)

	token, err := f.authn.IssueToken("owner-1", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	user, err := f.authn.Authenticate(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, user.IsAdmin())
	assert.Nil(t, user.Name)
}

func TestSessionAuthenticator_Cookies(t *testing.T) {
	f := newSessionFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	session := f.authn.SessionCookie(req, "tok")
	assert.True(t, session.Secure)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteNoneMode, session.SameSite)
	assert.Equal(t, 3600, session.MaxAge)

	cookies := f.authn.Logout(context.Background(), httptest.NewRequest(http.MethodPost, "/", nil), &model.User{OpenID: "x"})
	require.Len(t, cookies, 2)
	assert.Equal(t, "app_session_id", cookies[0].Name)
	assert.Equal(t, auth.DevCookieName, cookies[1].Name)
	for _, c := range cookies {
		assert.Equal(t, -1, c.MaxAge)
		assert.False(t, c.Secure)
	}
}

func TestSessionAuthenticator_WithoutSecret(t *testing.T) {
	logger := testutils.TestLogger(t)
	users := auth.NewUserService(database.NewUserRepository(nil, logger), "", logger)
	authn := auth.NewSessionAuthenticator(nil, users, nil, auth.SessionOptions{CookieName: "app_session_id"}, logger)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "app_session_id", Value: "qualquer"})

	user, err := authn.Authenticate(context.Background(), req)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, auth.ErrSessionsDisabled)

	_, err = authn.IssueToken("owner-1", "Dona")
	assert.ErrorIs(t, err, auth.ErrSessionsDisabled)
}

func TestSessionAuthenticator_CacheFailure(t *testing.T) {
	logger := testutils.TestLogger(t)
	db := testutils.NewTestDB(t)

	keys, err := security.NewKeyManager([]byte(testSecret), logger)
	require.NoError(t, err)

	c := new(mocks.MockCache)
	c.On("Get", mock.Anything, "user:aluna-9", mock.Anything).Return(false, errors.New("redis fora do ar"))
	c.On("Set", mock.Anything, "user:aluna-9", mock.Anything, time.Minute).Return(errors.New("redis fora do ar"))

	users := auth.NewUserService(database.NewUserRepository(db, logger), "", logger)
	authn := auth.NewSessionAuthenticator(keys, users, c, auth.SessionOptions{
		CookieName:      "app_session_id",
		SessionDuration: time.Hour,
		UserCacheTTL:    time.Minute,
	}, logger)

	token, err := authn.IssueToken("aluna-9", "Bia")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	user, err := authn.Authenticate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "aluna-9", user.OpenID)
	c.AssertExpectations(t)
}
