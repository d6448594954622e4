package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/mocks"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestUserService_Upsert(t *testing.T) {
	logger := testutils.TestLogger(t)

	t.Run("owner is promoted to admin", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := auth.NewUserService(repo, "owner-123", logger)

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(u model.UpsertUser) bool {
			return u.OpenID == "owner-123" && u.Role != nil && *u.Role == model.RoleAdmin
		})).Return(nil).Once()

		assert.NoError(t, svc.Upsert(context.Background(), model.UpsertUser{OpenID: "owner-123"}))
		repo.AssertExpectations(t)
	})

	t.Run("explicit role is kept", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := auth.NewUserService(repo, "owner-123", logger)
		role := model.RoleUser

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(u model.UpsertUser) bool {
			return u.Role != nil && *u.Role == model.RoleUser
		})).Return(nil).Once()

		assert.NoError(t, svc.Upsert(context.Background(), model.UpsertUser{OpenID: "owner-123", Role: &role}))
		repo.AssertExpectations(t)
	})

	t.Run("other users keep stored role", func(t *testing.T) {
		repo := new(mocks.MockUserRepository)
		svc := auth.NewUserService(repo, "owner-123", logger)

		repo.On("Upsert", mock.Anything, mock.MatchedBy(func(u model.UpsertUser) bool {
			return u.Role == nil
		})).Return(errors.New("db down")).Once()

		assert.Error(t, svc.Upsert(context.Background(), model.UpsertUser{OpenID: "aluno"}))
		repo.AssertExpectations(t)
	})
}
