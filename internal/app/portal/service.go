package portal

import (
	"context"
	"errors"
	"strings"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"go.uber.org/zap"
)

// Service atende o portal do aluno: bailarino pelo e-mail, suas matrículas e mensalidades
type Service struct {
	bailarinos   repository.BailarinoRepository
	matriculas   repository.MatriculaRepository
	mensalidades repository.MensalidadeRepository
	logger       *zap.Logger
}

// NewService cria o serviço do portal
func NewService(bailarinos repository.BailarinoRepository, matriculas repository.MatriculaRepository, mensalidades repository.MensalidadeRepository, logger *zap.Logger) *Service {
	return &Service{
		bailarinos:   bailarinos,
		matriculas:   matriculas,
		mensalidades: mensalidades,
		logger:       logger,
	}
}

// Aluno localiza o bailarino pelo e-mail exato. E-mail desconhecido devolve o portal vazio.
func (s *Service) Aluno(ctx context.Context, email string) (*model.PortalAluno, error) {
	portal := &model.PortalAluno{
		Matriculas:   []model.Matricula{},
		Mensalidades: []model.Mensalidade{},
	}

	bailarino, err := s.bailarinos.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return portal, nil
		}
		return nil, err
	}
	portal.Bailarino = bailarino

	matriculas, err := s.matriculas.ListByBailarino(ctx, bailarino.ID)
	if err != nil {
		return nil, err
	}
	portal.Matriculas = matriculas

	ids := make([]int64, 0, len(matriculas))
	for _, m := range matriculas {
		ids = append(ids, m.ID)
	}

	mensalidades, err := s.mensalidades.ListByMatriculas(ctx, ids)
	if err != nil {
		return nil, err
	}
	portal.Mensalidades = mensalidades

	s.logger.Debug("Portal do aluno consultado",
		zap.Int64("bailarino_id", bailarino.ID),
		zap.Int("matriculas", len(matriculas)),
		zap.Int("mensalidades", len(mensalidades)))
	return portal, nil
}
