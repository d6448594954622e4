package dashboard

import (
	"context"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/pkg/money"
	"go.uber.org/zap"
)

// RevenueWindow é a janela móvel usada na receita do painel
const RevenueWindow = 30 * 24 * time.Hour

// Service monta os indicadores do painel administrativo
type Service struct {
	repo    repository.DashboardRepository
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService cria o serviço do painel
func NewService(repo repository.DashboardRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Stats devolve os contadores e a receita paga nos últimos 30 dias a partir de agora
func (s *Service) Stats(ctx context.Context) (*model.DashboardStats, error) {
	since := s.nowFunc().UTC().Add(-RevenueWindow)

	stats, err := s.repo.Stats(ctx, since)
	if err != nil {
		s.logger.Error("Falha ao calcular estatísticas do painel", zap.Error(err))
		return nil, err
	}

	stats.ReceitaFormatada = money.FormatBRL(stats.ReceitaMensal)
	return stats, nil
}

// MatriculasPorCurso devolve a contagem de matrículas ativas por curso
func (s *Service) MatriculasPorCurso(ctx context.Context) ([]model.MatriculasPorCurso, error) {
	return s.repo.MatriculasPorCurso(ctx)
}
