package service

import (
	"context"
	"testing"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewServices_WithoutDatabase(t *testing.T) {
	ctx := context.Background()
	s := NewServices(nil, "owner", nil, zaptest.NewLogger(t))

	cursos, err := s.Repos.Cursos.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, cursos)

	stats, err := s.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalBailarinos)

	err = s.Repos.Cursos.Create(ctx, &model.Curso{Nome: "Ballet"})
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestNewServices_WithDatabase(t *testing.T) {
	ctx := context.Background()
	db := testutils.NewTestDB(t)
	s := NewServices(db, "owner", nil, zaptest.NewLogger(t))

	curso := &model.Curso{Nome: "Jazz", Modalidade: "Jazz", Nivel: model.NivelIniciante, Ativo: true}
	require.NoError(t, s.Repos.Cursos.Create(ctx, curso))
	assert.NotZero(t, curso.ID)

	stats, err := s.Dashboard.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalCursos)
}
