//go:build !devauth

package auth_test

import (
	"testing"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/mocks"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/diillson/dancart-api/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestSelect_WithoutDevBuildTag(t *testing.T) {
	logger := testutils.TestLogger(t)
	session := new(mocks.MockAuthenticator)
	users := auth.NewUserService(new(mocks.MockUserRepository), "", logger)

	for _, env := range []string{config.EnvDevelopment, config.EnvProduction, config.EnvTest} {
		selected := auth.Select(env, session, users, "admin-dev", logger)
		assert.Same(t, session, selected, env)

		_, isDev := selected.(auth.DevSession)
		assert.False(t, isDev, env)
	}
}
