package matricula_test

import (
	"context"
	"testing"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/app/matricula"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/internal/testutils"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc        *matricula.Service
	matriculas *database.MatriculaRepository
	bailarino  *model.Bailarino
	curso      *model.Curso
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := testutils.TestLogger(t)
	db := testutils.NewTestDB(t)

	bailarino := &model.Bailarino{Nome: "Lia", DataNascimento: model.NewDate(2011, 6, 1), Ativo: true}
	require.NoError(t, db.Create(bailarino).Error)
	curso := &model.Curso{Nome: "Ballet Clássico", Modalidade: "Ballet", Nivel: model.NivelIntermediario, ValorMensal: 15000, VagasTotal: 20, Ativo: true}
	require.NoError(t, db.Create(curso).Error)

	matriculas := database.NewMatriculaRepository(db, logger)
	return &fixture{
		svc:        matricula.NewService(matriculas, database.NewCursoRepository(db, logger), logger),
		matriculas: matriculas,
		bailarino:  bailarino,
		curso:      curso,
	}
}

func (f *fixture) input(tipo model.TipoBolsa, pct int, valor *int64) model.MatriculaInput {
	inicio := model.NewDate(2025, 2, 1)
	return model.MatriculaInput{
		BailarinoID:            f.bailarino.ID,
		CursoID:                f.curso.ID,
		DataInicio:             &inicio,
		TipoBolsa:              tipo,
		PercentualBolsa:        pct,
		ValorMensalComDesconto: valor,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the supplied matching discount", func(t *testing.T) {
		f := newFixture(t)
		m, err := f.svc.Create(ctx, f.input(model.BolsaParcial, 30, int64Ptr(10500)))
		require.NoError(t, err)

		stored, err := f.matriculas.GetByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10500), stored.ValorMensalComDesconto)
		assert.Equal(t, model.MatriculaAtiva, stored.Status)
	})

	t.Run("computes the discount when omitted", func(t *testing.T) {
		f := newFixture(t)
		m, err := f.svc.Create(ctx, f.input(model.BolsaNenhuma, 0, nil))
		require.NoError(t, err)
		assert.Equal(t, int64(15000), m.ValorMensalComDesconto)

		integral, err := f.svc.Create(ctx, f.input(model.BolsaIntegral, 100, nil))
		require.NoError(t, err)
		assert.Equal(t, int64(0), integral.ValorMensalComDesconto)
	})

	t.Run("rejects a mismatching discount", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Create(ctx, f.input(model.BolsaParcial, 30, int64Ptr(9000)))
		require.Error(t, err)

		apiErr := apperrors.FromError(err)
		assert.Equal(t, apperrors.CodeBadRequest, apiErr.Code)
		assert.Equal(t, matricula.DiscountMismatch{Informado: 9000, Esperado: 10500}, apiErr.Details)

		all, _ := f.matriculas.List(ctx)
		assert.Empty(t, all)
	})

	t.Run("rejects incoherent scholarship", func(t *testing.T) {
		f := newFixture(t)
		for _, in := range []model.MatriculaInput{
			f.input(model.BolsaNenhuma, 10, nil),
			f.input(model.BolsaIntegral, 50, nil),
			f.input(model.BolsaParcial, 0, nil),
		} {
			_, err := f.svc.Create(ctx, in)
			assert.Equal(t, apperrors.CodeBadRequest, apperrors.FromError(err).Code)
		}
	})

	t.Run("unknown course", func(t *testing.T) {
		f := newFixture(t)
		in := f.input(model.BolsaNenhuma, 0, nil)
		in.CursoID = 999
		_, err := f.svc.Create(ctx, in)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Equal(t, "Curso não encontrado", apperrors.FromError(err).Message)
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	m, err := f.svc.Create(ctx, f.input(model.BolsaNenhuma, 0, nil))
	require.NoError(t, err)

	parcial := model.BolsaParcial
	pct := 50
	require.NoError(t, f.svc.Update(ctx, m.ID, model.MatriculaPatch{TipoBolsa: &parcial, PercentualBolsa: &pct}))

	stored, err := f.matriculas.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7500), stored.ValorMensalComDesconto)
	assert.Equal(t, 50, stored.PercentualBolsa)

	err = f.svc.Update(ctx, m.ID, model.MatriculaPatch{ValorMensalComDesconto: int64Ptr(100)})
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.FromError(err).Code)

	motivo := "mudou de cidade"
	cancelada := model.MatriculaCancelada
	require.NoError(t, f.svc.Update(ctx, m.ID, model.MatriculaPatch{Status: &cancelada, MotivoCancelamento: &motivo}))
	stored, _ = f.matriculas.GetByID(ctx, m.ID)
	assert.Equal(t, model.MatriculaCancelada, stored.Status)
	assert.Equal(t, motivo, *stored.MotivoCancelamento)

	assert.ErrorIs(t, f.svc.Update(ctx, 4040, model.MatriculaPatch{PercentualBolsa: &pct}), repository.ErrNotFound)
}
