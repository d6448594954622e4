package matricula

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/money"
	"go.uber.org/zap"
)

// Service aplica as regras de matrícula: referências, bolsa e valor com desconto.
// O contador de vagas é mantido pelo repositório na mesma transação da escrita.
type Service struct {
	matriculas repository.MatriculaRepository
	cursos     repository.CursoRepository
	logger     *zap.Logger
}

// NewService cria o serviço de matrículas
func NewService(matriculas repository.MatriculaRepository, cursos repository.CursoRepository, logger *zap.Logger) *Service {
	return &Service{
		matriculas: matriculas,
		cursos:     cursos,
		logger:     logger,
	}
}

// DiscountMismatch detalha um valor com desconto divergente do calculado
type DiscountMismatch struct {
	Informado int64 `json:"informado"`
	Esperado  int64 `json:"esperado"`
}

// Create valida a bolsa contra o preço do curso e grava a matrícula.
// Sem valorMensalComDesconto, o valor é calculado; informado, precisa bater com o cálculo.
func (s *Service) Create(ctx context.Context, in model.MatriculaInput) (*model.Matricula, error) {
	curso, err := s.curso(ctx, in.CursoID)
	if err != nil {
		return nil, err
	}

	valor, err := discounted(curso.ValorMensal, in.TipoBolsa, in.PercentualBolsa, in.ValorMensalComDesconto)
	if err != nil {
		return nil, err
	}

	m := &model.Matricula{
		BailarinoID:            in.BailarinoID,
		CursoID:                in.CursoID,
		DataInicio:             *in.DataInicio,
		DataFim:                in.DataFim,
		TipoBolsa:              in.TipoBolsa,
		PercentualBolsa:        in.PercentualBolsa,
		ValorMensalComDesconto: valor,
		Status:                 model.MatriculaAtiva,
	}
	if err := s.matriculas.Create(ctx, m); err != nil {
		return nil, err
	}

	s.logger.Info("Matrícula criada",
		zap.Int64("matricula_id", m.ID),
		zap.Int64("bailarino_id", m.BailarinoID),
		zap.Int64("curso_id", m.CursoID),
		zap.Int64("valor", m.ValorMensalComDesconto))
	return m, nil
}

// Update aplica o patch. Mudanças de bolsa ou valor são revalidadas contra o curso.
func (s *Service) Update(ctx context.Context, id int64, patch model.MatriculaPatch) error {
	changes := model.Changes(patch)

	if patch.TipoBolsa != nil || patch.PercentualBolsa != nil || patch.ValorMensalComDesconto != nil {
		current, err := s.matriculas.GetByID(ctx, id)
		if err != nil {
			return err
		}
		curso, err := s.curso(ctx, current.CursoID)
		if err != nil {
			return err
		}

		tipo, pct := current.TipoBolsa, current.PercentualBolsa
		if patch.TipoBolsa != nil {
			tipo = *patch.TipoBolsa
		}
		if patch.PercentualBolsa != nil {
			pct = *patch.PercentualBolsa
		}

		valor, err := discounted(curso.ValorMensal, tipo, pct, patch.ValorMensalComDesconto)
		if err != nil {
			return err
		}
		changes["valor_mensal_com_desconto"] = valor
	}

	return s.matriculas.Update(ctx, id, changes)
}

func (s *Service) curso(ctx context.Context, id int64) (*model.Curso, error) {
	curso, err := s.cursos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Curso", err)
		}
		return nil, err
	}
	return curso, nil
}

// discounted confere a coerência entre tipo e percentual de bolsa e devolve o valor final em centavos
func discounted(valorMensal int64, tipo model.TipoBolsa, pct int, informado *int64) (int64, error) {
	switch {
	case tipo == model.BolsaNenhuma && pct != 0:
		return 0, apperrors.BadRequest("Matrícula sem bolsa não pode ter percentual de desconto", nil)
	case tipo == model.BolsaIntegral && pct != 100:
		return 0, apperrors.BadRequest("Bolsa integral exige percentual de 100%", nil)
	case tipo == model.BolsaParcial && (pct <= 0 || pct >= 100):
		return 0, apperrors.BadRequest("Bolsa parcial exige percentual entre 1% e 99%", nil)
	}

	esperado := money.ApplyDiscount(valorMensal, pct)
	if informado != nil && *informado != esperado {
		return 0, apperrors.BadRequest(
			fmt.Sprintf("Valor com desconto não confere com o curso: esperado %s", money.FormatBRL(esperado)), nil,
		).WithDetails(DiscountMismatch{Informado: *informado, Esperado: esperado})
	}
	return esperado, nil
}
