//go:build devauth

package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/internal/mocks"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/diillson/dancart-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDevBypass(t *testing.T) {
	logger := testutils.TestLogger(t)
	session := new(mocks.MockAuthenticator)
	repo := new(mocks.MockUserRepository)
	users := auth.NewUserService(repo, "", logger)
	admin := &model.User{OpenID: "admin-dev", Role: model.RoleAdmin}

	session.On("Authenticate", mock.Anything, mock.Anything).Return(nil, auth.ErrNoCredential)
	repo.On("GetByOpenID", mock.Anything, "admin-dev").Return(admin, nil)

	assert.Same(t, session, auth.Select(config.EnvProduction, session, users, "admin-dev", logger))

	selected := auth.Select(config.EnvDevelopment, session, users, "admin-dev", logger)
	dev, ok := selected.(auth.DevSession)
	require.True(t, ok)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	user, err := selected.Authenticate(context.Background(), req)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, auth.ErrNoCredential)

	req.AddCookie(dev.DevCookie())
	user, err = selected.Authenticate(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, admin, user)

	wrong := httptest.NewRequest(http.MethodGet, "/", nil)
	wrong.AddCookie(&http.Cookie{Name: auth.DevCookieName, Value: "1"})
	user, _ = selected.Authenticate(context.Background(), wrong)
	assert.Nil(t, user)
}

func TestDevBypass_MissingSeedAccount(t *testing.T) {
	logger := testutils.TestLogger(t)
	session := new(mocks.MockAuthenticator)
	repo := new(mocks.MockUserRepository)

	session.On("Authenticate", mock.Anything, mock.Anything).Return(nil, auth.ErrNoCredential)
	repo.On("GetByOpenID", mock.Anything, "admin-dev").Return(nil, repository.ErrNotFound)

	authn := auth.NewDevBypassAuthenticator(session, auth.NewUserService(repo, "", logger), "admin-dev", logger)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(authn.DevCookie())

	user, err := authn.Authenticate(context.Background(), req)
	assert.Nil(t, user)
	assert.Error(t, err)
}
