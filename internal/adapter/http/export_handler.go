package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/internal/export"
	"github.com/diillson/dancart-api/internal/infra/metrics"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExportHandler gera planilhas administrativas
type ExportHandler struct {
	matriculas   repository.MatriculaRepository
	mensalidades repository.MensalidadeRepository
	logger       *zap.Logger
	metrics      *metrics.APIMetrics
}

// NewExportHandler cria um novo handler de exportação
func NewExportHandler(matriculas repository.MatriculaRepository, mensalidades repository.MensalidadeRepository, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		matriculas:   matriculas,
		mensalidades: mensalidades,
		logger:       logger,
	}
}

// SetMetrics configura o objeto de métricas
func (h *ExportHandler) SetMetrics(metrics *metrics.APIMetrics) {
	h.metrics = metrics
}

// Mensalidades exporta as mensalidades; ?mes=AAAA-MM filtra um mês de referência
func (h *ExportHandler) Mensalidades(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		mensalidades []model.Mensalidade
		err          error
		filename     = "mensalidades.xlsx"
	)
	if raw := c.Query("mes"); raw != "" {
		mes, perr := parseMes(raw)
		if perr != nil {
			h.fail(c, apperrors.BadRequest("Mês inválido, use AAAA-MM", perr))
			return
		}
		mensalidades, err = h.mensalidades.ListByMes(ctx, mes)
		filename = fmt.Sprintf("mensalidades-%s.xlsx", mes.Time().Format("2006-01"))
	} else {
		mensalidades, err = h.mensalidades.List(ctx)
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.send(c, filename, export.MensalidadesSheet(mensalidades))
}

// Matriculas exporta as matrículas com nomes de bailarino e curso
func (h *ExportHandler) Matriculas(c *gin.Context) {
	matriculas, err := h.matriculas.ListDetalhadas(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	h.send(c, "matriculas.xlsx", export.MatriculasSheet(matriculas))
}

func (h *ExportHandler) send(c *gin.Context, filename string, sheet export.SheetSpec) {
	wb, err := export.NewWorkbook([]export.SheetSpec{sheet})
	if err != nil {
		h.fail(c, apperrors.InternalServer("Falha ao gerar planilha", err))
		return
	}
	defer wb.Close()

	data, err := wb.Bytes()
	if err != nil {
		h.fail(c, apperrors.InternalServer("Falha ao gerar planilha", err))
		return
	}

	h.logger.Info("Planilha exportada",
		zap.String("arquivo", filename),
		zap.Int("linhas", len(sheet.Rows)))

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, data)
}

func (h *ExportHandler) fail(c *gin.Context, err error) {
	apiErr := apperrors.FromError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.Error("Falha na exportação", zap.String("path", c.Request.URL.Path), zap.Error(err))
		if h.metrics != nil {
			h.metrics.RequestError(c.FullPath(), c.Request.Method, "export_error")
		}
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}

func parseMes(raw string) (model.Date, error) {
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return model.FirstOfMonth(model.DateOf(t)), nil
		}
	}
	return model.Date{}, fmt.Errorf("mês inválido: %q", raw)
}
