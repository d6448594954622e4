package evento

import (
	"context"
	"errors"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/money"
	"go.uber.org/zap"
)

// Service cuida de eventos e inscrições.
// O valor de inscrição chega em reais e é gravado em centavos.
type Service struct {
	eventos    repository.EventoRepository
	inscricoes repository.InscricaoRepository
	logger     *zap.Logger
}

// NewService cria o serviço de eventos
func NewService(eventos repository.EventoRepository, inscricoes repository.InscricaoRepository, logger *zap.Logger) *Service {
	return &Service{
		eventos:    eventos,
		inscricoes: inscricoes,
		logger:     logger,
	}
}

// Create grava o evento convertendo o valor de inscrição para centavos
func (s *Service) Create(ctx context.Context, in model.EventoInput) (*model.Evento, error) {
	e := in.Entity(money.CentsFromReais(*in.ValorInscricao))
	if err := s.eventos.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("Evento criado",
		zap.Int64("evento_id", e.ID),
		zap.String("titulo", e.Titulo),
		zap.Int64("valor_inscricao", e.ValorInscricao))
	return e, nil
}

// Update aplica o patch; valorInscricao, quando presente, é convertido para centavos
func (s *Service) Update(ctx context.Context, id int64, patch model.EventoPatch) error {
	changes := model.Changes(patch)
	if patch.ValorInscricao != nil {
		changes["valor_inscricao"] = money.CentsFromReais(*patch.ValorInscricao)
	}
	return s.eventos.Update(ctx, id, changes)
}

// Get busca o evento ou devolve NOT_FOUND
func (s *Service) Get(ctx context.Context, id int64) (*model.Evento, error) {
	e, err := s.eventos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Evento", err)
		}
		return nil, err
	}
	return e, nil
}

// Inscrever cria a inscrição. O valor pago é o valor vigente do evento no momento da inscrição.
func (s *Service) Inscrever(ctx context.Context, in model.InscricaoInput) (*model.InscricaoEvento, error) {
	ins := in.Entity(0)
	if err := s.inscricoes.Create(ctx, ins); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, apperrors.Conflict("Não há vagas disponíveis para este evento", err)
		case errors.Is(err, repository.ErrRegistrationClosed):
			return nil, apperrors.New(apperrors.CodePreconditionFailed, "As inscrições para este evento estão encerradas", err)
		}
		return nil, err
	}

	s.logger.Info("Inscrição registrada",
		zap.Int64("inscricao_id", ins.ID),
		zap.Int64("evento_id", ins.EventoID),
		zap.Int64("valor_pago", ins.ValorPago))
	return ins, nil
}
