package evento_test

import (
	"context"
	"testing"
	"time"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/app/evento"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/internal/testutils"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (*evento.Service, *database.InscricaoRepository) {
	t.Helper()
	logger := testutils.TestLogger(t)
	db := testutils.NewTestDB(t)
	inscricoes := database.NewInscricaoRepository(db, logger)
	return evento.NewService(database.NewEventoRepository(db, logger), inscricoes, logger), inscricoes
}

func eventoInput(valor float64, vagas *int) model.EventoInput {
	return model.EventoInput{
		Titulo:         "Mostra de Fim de Ano",
		Tipo:           model.EventoApresentacao,
		DataEvento:     &model.Timestamp{Time: time.Date(2025, 12, 12, 20, 0, 0, 0, time.UTC)},
		ValorInscricao: &valor,
		VagasTotal:     vagas,
	}
}

func TestService_CreateConvertsToCents(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, eventoInput(50.0, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(5000), e.ValorInscricao)
	assert.True(t, e.Ativo)
	assert.True(t, e.InscricoesAbertas)

	novo := 80.0
	require.NoError(t, svc.Update(ctx, e.ID, model.EventoPatch{ValorInscricao: &novo}))
	got, err := svc.Get(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(8000), got.ValorInscricao)

	centavos := 19.99
	require.NoError(t, svc.Update(ctx, e.ID, model.EventoPatch{ValorInscricao: &centavos}))
	got, _ = svc.Get(ctx, e.ID)
	assert.Equal(t, int64(1999), got.ValorInscricao)
}

func TestService_InscreverCapturesCurrentFee(t *testing.T) {
	svc, inscricoes := newService(t)
	ctx := context.Background()

	e, err := svc.Create(ctx, eventoInput(50, nil))
	require.NoError(t, err)

	ins, err := svc.Inscrever(ctx, model.InscricaoInput{EventoID: e.ID, NomeParticipante: "Rita", EmailParticipante: "rita@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), ins.ValorPago)
	assert.Equal(t, model.PagamentoPendente, ins.StatusPagamento)

	novo := 80.0
	require.NoError(t, svc.Update(ctx, e.ID, model.EventoPatch{ValorInscricao: &novo}))

	stored, err := inscricoes.GetByID(ctx, ins.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), stored.ValorPago)
}

func TestService_InscreverErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Inscrever(ctx, model.InscricaoInput{EventoID: 77, NomeParticipante: "X", EmailParticipante: "x@example.com"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.FromError(err).Code)

	vagas := 1
	lotado, err := svc.Create(ctx, eventoInput(0, &vagas))
	require.NoError(t, err)
	_, err = svc.Inscrever(ctx, model.InscricaoInput{EventoID: lotado.ID, NomeParticipante: "A", EmailParticipante: "a@example.com"})
	require.NoError(t, err)
	_, err = svc.Inscrever(ctx, model.InscricaoInput{EventoID: lotado.ID, NomeParticipante: "B", EmailParticipante: "b@example.com"})
	assert.Equal(t, apperrors.CodeConflict, apperrors.FromError(err).Code)

	fechado, err := svc.Create(ctx, eventoInput(0, nil))
	require.NoError(t, err)
	closed := false
	require.NoError(t, svc.Update(ctx, fechado.ID, model.EventoPatch{InscricoesAbertas: &closed}))
	_, err = svc.Inscrever(ctx, model.InscricaoInput{EventoID: fechado.ID, NomeParticipante: "C", EmailParticipante: "c@example.com"})
	assert.Equal(t, apperrors.CodePreconditionFailed, apperrors.FromError(err).Code)

	_, err = svc.Get(ctx, 9999)
	assert.Equal(t, "Evento não encontrado", apperrors.FromError(err).Message)
}
