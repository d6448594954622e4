package export

import (
	"bytes"
	"testing"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMensalidadesWorkbook(t *testing.T) {
	forma := "pix"
	sheet := MensalidadesSheet([]model.Mensalidade{
		{
			ID:             7,
			MatriculaID:    3,
			MesReferencia:  model.NewDate(2025, 3, 1),
			DataVencimento: model.NewDate(2025, 3, 10),
			ValorOriginal:  15000,
			ValorPago:      15000,
			Status:         model.MensalidadePaga,
			FormaPagamento: &forma,
		},
	})

	wb, err := NewWorkbook([]SheetSpec{sheet})
	require.NoError(t, err)
	data, err := wb.Bytes()
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Mensalidades")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Referência", rows[0][2])
	assert.Equal(t, []string{"7", "3", "03/2025", "10/03/2025", "R$ 150,00", "R$ 150,00", "paga", "", "pix"}, rows[1])
}

func TestMatriculasWorkbook_MultipleSheets(t *testing.T) {
	fim := model.NewDate(2025, 12, 15)
	matriculas := MatriculasSheet([]model.MatriculaDetalhada{
		{
			Matricula: model.Matricula{
				ID:                     1,
				DataInicio:             model.NewDate(2025, 2, 1),
				DataFim:                &fim,
				TipoBolsa:              model.BolsaParcial,
				PercentualBolsa:        30,
				ValorMensalComDesconto: 10500,
				Status:                 model.MatriculaAtiva,
			},
			BailarinoNome:   "Ana Souza",
			CursoNome:       "Ballet Infantil",
			CursoModalidade: "ballet",
		},
	})

	wb, err := NewWorkbook([]SheetSpec{matriculas, MensalidadesSheet(nil)})
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{"Matrículas", "Mensalidades"}, wb.File.GetSheetList())

	rows, err := wb.File.GetRows("Matrículas")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana Souza", rows[1][1])
	assert.Equal(t, "15/12/2025", rows[1][5])
	assert.Equal(t, "30%", rows[1][7])
	assert.Equal(t, "R$ 105,00", rows[1][8])
}

func TestNewWorkbook_Empty(t *testing.T) {
	_, err := NewWorkbook(nil)
	assert.Error(t, err)
}
