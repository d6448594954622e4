package cobranca

import (
	"context"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/internal/infra/metrics"
	"go.uber.org/zap"
)

// DiaVencimento é o dia do mês em que as mensalidades geradas vencem
const DiaVencimento = 10

// Service gera as mensalidades mensais das matrículas ativas
type Service struct {
	matriculas   repository.MatriculaRepository
	mensalidades repository.MensalidadeRepository
	metrics      *metrics.APIMetrics
	logger       *zap.Logger
}

// NewService cria o serviço de cobrança. metrics pode ser nil.
func NewService(matriculas repository.MatriculaRepository, mensalidades repository.MensalidadeRepository, metrics *metrics.APIMetrics, logger *zap.Logger) *Service {
	return &Service{
		matriculas:   matriculas,
		mensalidades: mensalidades,
		metrics:      metrics,
		logger:       logger,
	}
}

// GerarMensalidades cria uma mensalidade pendente por matrícula ativa no mês de referência.
// Matrículas que já têm mensalidade no mês ou com valor zero (bolsa integral) são ignoradas.
func (s *Service) GerarMensalidades(ctx context.Context, mes model.Date) (criadas, ignoradas int, err error) {
	mes = model.FirstOfMonth(mes)

	ativas, err := s.matriculas.ListByStatus(ctx, model.MatriculaAtiva)
	if err != nil {
		return 0, 0, err
	}

	existentes, err := s.mensalidades.ListByMes(ctx, mes)
	if err != nil {
		return 0, 0, err
	}
	cobradas := make(map[int64]struct{}, len(existentes))
	for _, m := range existentes {
		cobradas[m.MatriculaID] = struct{}{}
	}

	t := mes.Time()
	vencimento := model.NewDate(t.Year(), t.Month(), DiaVencimento)

	novas := make([]*model.Mensalidade, 0, len(ativas))
	for _, m := range ativas {
		if _, ok := cobradas[m.ID]; ok || m.ValorMensalComDesconto <= 0 {
			ignoradas++
			continue
		}
		novas = append(novas, &model.Mensalidade{
			MatriculaID:    m.ID,
			MesReferencia:  mes,
			ValorOriginal:  m.ValorMensalComDesconto,
			DataVencimento: vencimento,
			Status:         model.MensalidadePendente,
		})
	}

	if err := s.mensalidades.CreateBatch(ctx, novas); err != nil {
		s.logger.Error("Falha ao gerar mensalidades",
			zap.String("mes", mes.String()),
			zap.Error(err))
		return 0, ignoradas, err
	}

	if s.metrics != nil {
		s.metrics.DuesGenerated(len(novas))
	}

	s.logger.Info("Mensalidades geradas",
		zap.String("mes", mes.String()),
		zap.Int("criadas", len(novas)),
		zap.Int("ignoradas", ignoradas))
	return len(novas), ignoradas, nil
}

// MarcarAtrasadas passa para "atrasada" as mensalidades pendentes vencidas antes de now
func (s *Service) MarcarAtrasadas(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.mensalidades.MarkOverdue(ctx, model.DateOf(now.UTC()))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("Mensalidades marcadas como atrasadas", zap.Int64("quantidade", n))
	}
	return n, nil
}

// GerarLote gera as mensalidades do mês e atualiza as vencidas
func (s *Service) GerarLote(ctx context.Context, mes model.Date, now time.Time) (*model.LoteResultado, error) {
	criadas, ignoradas, err := s.GerarMensalidades(ctx, mes)
	if err != nil {
		return nil, err
	}

	atrasadas, err := s.MarcarAtrasadas(ctx, now)
	if err != nil {
		return nil, err
	}

	return &model.LoteResultado{
		MesReferencia: model.FirstOfMonth(mes),
		Criadas:       criadas,
		Ignoradas:     ignoradas,
		Atrasadas:     atrasadas,
	}, nil
}
