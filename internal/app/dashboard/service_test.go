package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diillson/dancart-api/internal/app/dashboard"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/mocks"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Stats(t *testing.T) {
	repo := new(mocks.MockDashboardRepository)
	svc := dashboard.NewService(repo, testutils.TestLogger(t))

	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	svc.SetNow(func() time.Time { return now })

	repo.On("Stats", mock.Anything, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)).
		Return(&model.DashboardStats{TotalBailarinos: 12, ReceitaMensal: 123450, Inadimplencia: 2}, nil).Once()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalBailarinos)
	assert.Equal(t, "R$ 1.234,50", stats.ReceitaFormatada)
	repo.AssertExpectations(t)
}

func TestService_StatsError(t *testing.T) {
	repo := new(mocks.MockDashboardRepository)
	svc := dashboard.NewService(repo, testutils.TestLogger(t))

	repo.On("Stats", mock.Anything, mock.AnythingOfType("time.Time")).Return(nil, errors.New("db down")).Once()

	_, err := svc.Stats(context.Background())
	assert.Error(t, err)
}

func TestService_MatriculasPorCurso(t *testing.T) {
	repo := new(mocks.MockDashboardRepository)
	svc := dashboard.NewService(repo, testutils.TestLogger(t))

	rows := []model.MatriculasPorCurso{{CursoNome: "Jazz", TotalMatriculas: 4}}
	repo.On("MatriculasPorCurso", mock.Anything).Return(rows, nil).Once()

	got, err := svc.MatriculasPorCurso(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
