package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BailarinoRepository implementa repository.BailarinoRepository
type BailarinoRepository struct {
	*crudRepository[model.Bailarino]
}

// NewBailarinoRepository cria o repositório de bailarinos
func NewBailarinoRepository(db *gorm.DB, logger *zap.Logger) *BailarinoRepository {
	return &BailarinoRepository{newCRUD[model.Bailarino](db, logger, "BailarinoRepository", "bailarinos", "created_at DESC")}
}

// GetByEmail busca o bailarino pelo e-mail exato
func (r *BailarinoRepository) GetByEmail(ctx context.Context, email string) (*model.Bailarino, error) {
	ctx, span := r.startSpan(ctx, "GetByEmail", "select")
	defer span.End()

	if r.db == nil {
		return nil, repository.ErrNotFound
	}

	var b model.Bailarino
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("id").First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetAttributes(attribute.Bool("db.found", false))
			return nil, repository.ErrNotFound
		}
		return nil, r.fail(span, "buscar bailarino por e-mail", err)
	}

	span.SetStatus(codes.Ok, "")
	return &b, nil
}

// Delete remove o bailarino se ele não tiver matrículas nem inscrições em eventos
func (r *BailarinoRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteUnreferenced(ctx, id,
		reference{model: &model.Matricula{}, column: "bailarino_id", what: "matrículas"},
		reference{model: &model.InscricaoEvento{}, column: "bailarino_id", what: "inscrições em eventos"},
	)
}

// CursoRepository implementa repository.CursoRepository
type CursoRepository struct {
	*crudRepository[model.Curso]
}

// NewCursoRepository cria o repositório de cursos
func NewCursoRepository(db *gorm.DB, logger *zap.Logger) *CursoRepository {
	return &CursoRepository{newCRUD[model.Curso](db, logger, "CursoRepository", "cursos", "created_at DESC")}
}

// ListAtivos retorna apenas cursos ativos
func (r *CursoRepository) ListAtivos(ctx context.Context) ([]model.Curso, error) {
	return r.find(ctx, "ListAtivos", func(q *gorm.DB) *gorm.DB {
		return q.Where("ativo = ?", true)
	})
}

// Delete remove o curso se ele não tiver matrículas
func (r *CursoRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteUnreferenced(ctx, id,
		reference{model: &model.Matricula{}, column: "curso_id", what: "matrículas"},
	)
}

// AgendamentoRepository implementa repository.AgendamentoRepository
type AgendamentoRepository struct {
	*crudRepository[model.Agendamento]
}

// NewAgendamentoRepository cria o repositório de agendamentos
func NewAgendamentoRepository(db *gorm.DB, logger *zap.Logger) *AgendamentoRepository {
	return &AgendamentoRepository{newCRUD[model.Agendamento](db, logger, "AgendamentoRepository", "agendamentos", "data_preferencia DESC")}
}

// ListPendentes retorna agendamentos aguardando confirmação
func (r *AgendamentoRepository) ListPendentes(ctx context.Context) ([]model.Agendamento, error) {
	return r.find(ctx, "ListPendentes", func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", model.AgendamentoPendente)
	})
}

// DepoimentoRepository implementa repository.DepoimentoRepository
type DepoimentoRepository struct {
	*crudRepository[model.Depoimento]
}

// NewDepoimentoRepository cria o repositório de depoimentos
func NewDepoimentoRepository(db *gorm.DB, logger *zap.Logger) *DepoimentoRepository {
	return &DepoimentoRepository{newCRUD[model.Depoimento](db, logger, "DepoimentoRepository", "depoimentos", "created_at DESC")}
}

// ListAprovados retorna somente depoimentos aprovados
func (r *DepoimentoRepository) ListAprovados(ctx context.Context) ([]model.Depoimento, error) {
	return r.find(ctx, "ListAprovados", func(q *gorm.DB) *gorm.DB {
		return q.Where("aprovado = ?", true)
	})
}

// EventoRepository implementa repository.EventoRepository
type EventoRepository struct {
	*crudRepository[model.Evento]
}

// NewEventoRepository cria o repositório de eventos
func NewEventoRepository(db *gorm.DB, logger *zap.Logger) *EventoRepository {
	return &EventoRepository{newCRUD[model.Evento](db, logger, "EventoRepository", "eventos", "data_evento DESC")}
}

// ListAtivos retorna somente eventos ativos
func (r *EventoRepository) ListAtivos(ctx context.Context) ([]model.Evento, error) {
	return r.find(ctx, "ListAtivos", func(q *gorm.DB) *gorm.DB {
		return q.Where("ativo = ?", true)
	})
}

// Delete remove o evento se ele não tiver inscrições
func (r *EventoRepository) Delete(ctx context.Context, id int64) error {
	return r.deleteUnreferenced(ctx, id,
		reference{model: &model.InscricaoEvento{}, column: "evento_id", what: "inscrições"},
	)
}

// NoticiaRepository implementa repository.NoticiaRepository
type NoticiaRepository struct {
	*crudRepository[model.Noticia]
}

// NewNoticiaRepository cria o repositório de notícias
func NewNoticiaRepository(db *gorm.DB, logger *zap.Logger) *NoticiaRepository {
	return &NoticiaRepository{newCRUD[model.Noticia](db, logger, "NoticiaRepository", "noticias", "created_at DESC")}
}

// ListPublicadas retorna notícias publicadas, das mais recentes para as mais antigas
func (r *NoticiaRepository) ListPublicadas(ctx context.Context) ([]model.Noticia, error) {
	return r.find(ctx, "ListPublicadas", func(q *gorm.DB) *gorm.DB {
		return q.Where("publicada = ?", true).Order("data_publicacao DESC")
	})
}

// IncrementViews soma uma visualização à notícia
func (r *NoticiaRepository) IncrementViews(ctx context.Context, id int64) error {
	ctx, span := r.startSpan(ctx, "IncrementViews", "update", attribute.Int64("db.id", id))
	defer span.End()

	if r.db == nil {
		return repository.ErrStorageUnavailable
	}

	err := r.db.WithContext(ctx).Model(&model.Noticia{}).Where("id = ?", id).
		UpdateColumn("visualizacoes", gorm.Expr("visualizacoes + 1")).Error
	if err != nil {
		return r.fail(span, "contar visualização", err, zap.Int64("id", id))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// MensalidadeRepository implementa repository.MensalidadeRepository
type MensalidadeRepository struct {
	*crudRepository[model.Mensalidade]
}

// NewMensalidadeRepository cria o repositório de mensalidades
func NewMensalidadeRepository(db *gorm.DB, logger *zap.Logger) *MensalidadeRepository {
	return &MensalidadeRepository{newCRUD[model.Mensalidade](db, logger, "MensalidadeRepository", "mensalidades", "mes_referencia DESC")}
}

// ListByMatricula retorna as mensalidades de uma matrícula
func (r *MensalidadeRepository) ListByMatricula(ctx context.Context, matriculaID int64) ([]model.Mensalidade, error) {
	return r.find(ctx, "ListByMatricula", func(q *gorm.DB) *gorm.DB {
		return q.Where("matricula_id = ?", matriculaID)
	})
}

// ListByMatriculas retorna as mensalidades de várias matrículas em uma consulta
func (r *MensalidadeRepository) ListByMatriculas(ctx context.Context, matriculaIDs []int64) ([]model.Mensalidade, error) {
	if len(matriculaIDs) == 0 {
		return []model.Mensalidade{}, nil
	}
	return r.find(ctx, "ListByMatriculas", func(q *gorm.DB) *gorm.DB {
		return q.Where("matricula_id IN ?", matriculaIDs)
	})
}

// ListByMes retorna as mensalidades de um mês de referência
func (r *MensalidadeRepository) ListByMes(ctx context.Context, mes model.Date) ([]model.Mensalidade, error) {
	return r.find(ctx, "ListByMes", func(q *gorm.DB) *gorm.DB {
		return q.Where("mes_referencia = ?", model.FirstOfMonth(mes))
	})
}

// CreateBatch insere várias mensalidades em uma única transação
func (r *MensalidadeRepository) CreateBatch(ctx context.Context, mensalidades []*model.Mensalidade) error {
	if len(mensalidades) == 0 {
		return nil
	}
	return r.inTx(ctx, "CreateBatch", "insert", func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(mensalidades, 100).Error; err != nil {
			return fmt.Errorf("falha ao inserir lote de mensalidades: %w", err)
		}
		return nil
	})
}

// MarkOverdue marca como atrasadas as mensalidades pendentes vencidas antes de today
func (r *MensalidadeRepository) MarkOverdue(ctx context.Context, today model.Date) (int64, error) {
	ctx, span := r.startSpan(ctx, "MarkOverdue", "update")
	defer span.End()

	if r.db == nil {
		return 0, repository.ErrStorageUnavailable
	}

	result := r.db.WithContext(ctx).Model(&model.Mensalidade{}).
		Where("status = ? AND data_vencimento < ?", model.MensalidadePendente, today).
		Update("status", model.MensalidadeAtrasada)
	if result.Error != nil {
		return 0, r.fail(span, "marcar mensalidades atrasadas", result.Error)
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", result.RowsAffected))
	span.SetStatus(codes.Ok, "")
	return result.RowsAffected, nil
}
