package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatriculaRepository implementa repository.MatriculaRepository.
// Matrículas ativas ocupam uma vaga do curso; o contador muda na mesma transação da escrita.
type MatriculaRepository struct {
	*crudRepository[model.Matricula]
}

// NewMatriculaRepository cria o repositório de matrículas
func NewMatriculaRepository(db *gorm.DB, logger *zap.Logger) *MatriculaRepository {
	return &MatriculaRepository{newCRUD[model.Matricula](db, logger, "MatriculaRepository", "matriculas", "created_at DESC")}
}

// ListByBailarino retorna as matrículas de um bailarino
func (r *MatriculaRepository) ListByBailarino(ctx context.Context, bailarinoID int64) ([]model.Matricula, error) {
	return r.find(ctx, "ListByBailarino", func(q *gorm.DB) *gorm.DB {
		return q.Where("bailarino_id = ?", bailarinoID)
	})
}

// ListByCurso retorna as matrículas de um curso
func (r *MatriculaRepository) ListByCurso(ctx context.Context, cursoID int64) ([]model.Matricula, error) {
	return r.find(ctx, "ListByCurso", func(q *gorm.DB) *gorm.DB {
		return q.Where("curso_id = ?", cursoID)
	})
}

// ListByStatus retorna as matrículas em uma situação
func (r *MatriculaRepository) ListByStatus(ctx context.Context, status model.MatriculaStatus) ([]model.Matricula, error) {
	return r.find(ctx, "ListByStatus", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

// ListDetalhadas retorna as matrículas com nome do bailarino e do curso
func (r *MatriculaRepository) ListDetalhadas(ctx context.Context) ([]model.MatriculaDetalhada, error) {
	ctx, span := r.startSpan(ctx, "ListDetalhadas", "select")
	defer span.End()

	rows := make([]model.MatriculaDetalhada, 0)
	if r.db == nil {
		return rows, nil
	}

	err := r.db.WithContext(ctx).
		Table("matriculas").
		Select("matriculas.*, bailarinos.nome AS bailarino_nome, cursos.nome AS curso_nome, cursos.modalidade AS curso_modalidade").
		Joins("INNER JOIN bailarinos ON bailarinos.id = matriculas.bailarino_id").
		Joins("INNER JOIN cursos ON cursos.id = matriculas.curso_id").
		Order("matriculas.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, r.fail(span, "listar matrículas detalhadas", err)
	}
	return rows, nil
}

// Create valida bailarino e curso, reserva a vaga quando a matrícula nasce ativa e insere
func (r *MatriculaRepository) Create(ctx context.Context, m *model.Matricula) error {
	if m.Status == "" {
		m.Status = model.MatriculaAtiva
	}
	if m.TipoBolsa == "" {
		m.TipoBolsa = model.BolsaNenhuma
	}
	if m.DataMatricula.IsZero() {
		m.DataMatricula = time.Now().UTC()
	}

	return r.inTx(ctx, "Create", "insert", func(tx *gorm.DB) error {
		if err := mustExist[model.Bailarino](tx, m.BailarinoID, "bailarino"); err != nil {
			return err
		}
		if err := mustExist[model.Curso](tx, m.CursoID, "curso"); err != nil {
			return err
		}

		if m.Status == model.MatriculaAtiva {
			if err := reserveSeat(tx, "cursos", m.CursoID); err != nil {
				return err
			}
		}

		return tx.Create(m).Error
	})
}

// Update aplica as alterações e acerta o contador de vagas quando a matrícula entra ou sai de "ativa"
func (r *MatriculaRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	status, changesStatus := matriculaStatus(changes["status"])
	if !changesStatus {
		return r.crudRepository.Update(ctx, id, changes)
	}

	return r.inTx(ctx, "Update", "update", func(tx *gorm.DB) error {
		var current model.Matricula
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		wasActive := current.Status == model.MatriculaAtiva
		isActive := status == model.MatriculaAtiva
		switch {
		case isActive && !wasActive:
			if err := reserveSeat(tx, "cursos", current.CursoID); err != nil {
				return err
			}
		case wasActive && !isActive:
			if err := adjustSeats(tx, "cursos", current.CursoID, -1); err != nil {
				return err
			}
		}

		return updateColumns[model.Matricula](tx, id, changes)
	})
}

// Delete remove a matrícula e libera a vaga se ela estava ativa.
// Matrícula com mensalidades devolve ErrReferenced.
func (r *MatriculaRepository) Delete(ctx context.Context, id int64) error {
	return r.inTx(ctx, "Delete", "delete", func(tx *gorm.DB) error {
		var current model.Matricula
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := mustNotBeReferenced(tx, id,
			reference{model: &model.Mensalidade{}, column: "matricula_id", what: "mensalidades"},
		); err != nil {
			return err
		}

		if err := tx.Delete(&model.Matricula{}, id).Error; err != nil {
			return err
		}

		if current.Status == model.MatriculaAtiva {
			return adjustSeats(tx, "cursos", current.CursoID, -1)
		}
		return nil
	})
}

func matriculaStatus(v any) (model.MatriculaStatus, bool) {
	switch s := v.(type) {
	case model.MatriculaStatus:
		return s, true
	case string:
		return model.MatriculaStatus(s), true
	}
	return "", false
}

// mustExist devolve ErrNotFound embrulhado quando o registro id de T não existe
func mustExist[T any](tx *gorm.DB, id int64, what string) error {
	var count int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%s %d: %w", what, id, repository.ErrNotFound)
	}
	return nil
}
