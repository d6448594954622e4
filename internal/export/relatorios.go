package export

import (
	"strconv"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/pkg/money"
)

const dateLayout = "02/01/2006"

func formatDate(d model.Date) string {
	return d.Time().Format(dateLayout)
}

func formatOptionalDate(d *model.Date) string {
	if d == nil {
		return ""
	}
	return formatDate(*d)
}

func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(time.Local).Format(dateLayout)
}

func optional(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// MensalidadesSheet lista mensalidades com valores em reais
func MensalidadesSheet(mensalidades []model.Mensalidade) SheetSpec {
	rows := make([][]string, 0, len(mensalidades))
	for _, m := range mensalidades {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			strconv.FormatInt(m.MatriculaID, 10),
			m.MesReferencia.Time().Format("01/2006"),
			formatDate(m.DataVencimento),
			money.FormatBRL(m.ValorOriginal),
			money.FormatBRL(m.ValorPago),
			string(m.Status),
			formatOptionalTime(m.DataPagamento),
			optional(m.FormaPagamento),
		})
	}
	return SheetSpec{
		Title:  "Mensalidades",
		Header: []string{"ID", "Matrícula", "Referência", "Vencimento", "Valor", "Valor pago", "Status", "Pagamento", "Forma de pagamento"},
		Rows:   rows,
	}
}

// MatriculasSheet lista matrículas com os nomes de bailarino e curso
func MatriculasSheet(matriculas []model.MatriculaDetalhada) SheetSpec {
	rows := make([][]string, 0, len(matriculas))
	for _, m := range matriculas {
		rows = append(rows, []string{
			strconv.FormatInt(m.ID, 10),
			m.BailarinoNome,
			m.CursoNome,
			m.CursoModalidade,
			formatDate(m.DataInicio),
			formatOptionalDate(m.DataFim),
			string(m.TipoBolsa),
			strconv.Itoa(m.PercentualBolsa) + "%",
			money.FormatBRL(m.ValorMensalComDesconto),
			string(m.Status),
		})
	}
	return SheetSpec{
		Title:  "Matrículas",
		Header: []string{"ID", "Bailarino", "Curso", "Modalidade", "Início", "Fim", "Bolsa", "Percentual", "Mensalidade", "Status"},
		Rows:   rows,
	}
}
