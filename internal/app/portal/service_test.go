package portal_test

import (
	"context"
	"testing"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/app/portal"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Aluno(t *testing.T) {
	logger := testutils.TestLogger(t)
	db := testutils.NewTestDB(t)
	ctx := context.Background()

	email := "joana@example.com"
	joana := &model.Bailarino{Nome: "Joana", DataNascimento: model.NewDate(2009, 1, 2), Email: &email, Ativo: true}
	outra := &model.Bailarino{Nome: "Outra", DataNascimento: model.NewDate(2009, 1, 2), Ativo: true}
	require.NoError(t, db.Create(joana).Error)
	require.NoError(t, db.Create(outra).Error)

	mJoana := &model.Matricula{BailarinoID: joana.ID, CursoID: 1, DataInicio: model.NewDate(2025, 1, 1), TipoBolsa: model.BolsaNenhuma, Status: model.MatriculaAtiva}
	mOutra := &model.Matricula{BailarinoID: outra.ID, CursoID: 1, DataInicio: model.NewDate(2025, 1, 1), TipoBolsa: model.BolsaNenhuma, Status: model.MatriculaAtiva}
	require.NoError(t, db.Create(mJoana).Error)
	require.NoError(t, db.Create(mOutra).Error)

	for _, matriculaID := range []int64{mJoana.ID, mJoana.ID, mOutra.ID} {
		require.NoError(t, db.Create(&model.Mensalidade{
			MatriculaID:    matriculaID,
			MesReferencia:  model.NewDate(2025, 1, 1),
			ValorOriginal:  12000,
			DataVencimento: model.NewDate(2025, 1, 10),
			Status:         model.MensalidadePendente,
		}).Error)
	}

	svc := portal.NewService(
		database.NewBailarinoRepository(db, logger),
		database.NewMatriculaRepository(db, logger),
		database.NewMensalidadeRepository(db, logger),
		logger,
	)

	got, err := svc.Aluno(ctx, " joana@example.com ")
	require.NoError(t, err)
	require.NotNil(t, got.Bailarino)
	assert.Equal(t, joana.ID, got.Bailarino.ID)
	assert.Len(t, got.Matriculas, 1)
	assert.Len(t, got.Mensalidades, 2)
	for _, m := range got.Mensalidades {
		assert.Equal(t, mJoana.ID, m.MatriculaID)
	}

	empty, err := svc.Aluno(ctx, "ninguem@example.com")
	require.NoError(t, err)
	assert.Nil(t, empty.Bailarino)
	assert.NotNil(t, empty.Matriculas)
	assert.Empty(t, empty.Mensalidades)
}
