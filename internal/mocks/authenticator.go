package mocks

import (
	"context"
	"net/http"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockAuthenticator é um mock para auth.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*model.User, error) {
	args := m.Called(ctx, r)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*model.User), args.Error(1)
}
