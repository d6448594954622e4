package mocks

import (
	"context"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository é um mock para repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	args := m.Called(ctx, openID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user model.UpsertUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockDashboardRepository é um mock para repository.DashboardRepository
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) Stats(ctx context.Context, since time.Time) (*model.DashboardStats, error) {
	args := m.Called(ctx, since)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func (m *MockDashboardRepository) MatriculasPorCurso(ctx context.Context) ([]model.MatriculasPorCurso, error) {
	args := m.Called(ctx)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]model.MatriculasPorCurso), args.Error(1)
}
