package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/dancart-api/internal/domain/repository"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// crudRepository implementa repository.CRUD para uma entidade GORM.
// Com db nil as leituras devolvem vazio e as escritas ErrStorageUnavailable.
type crudRepository[T any] struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
	name   string // prefixo dos spans, ex. "BailarinoRepository"
	table  string
	order  string
}

func newCRUD[T any](db *gorm.DB, logger *zap.Logger, name, table, order string) *crudRepository[T] {
	return &crudRepository[T]{
		db:     db,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("dancart.repository." + table),
		name:   name,
		table:  table,
		order:  order,
	}
}

func (r *crudRepository[T]) startSpan(ctx context.Context, op, dbOp string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("db.operation", dbOp),
		attribute.String("db.table", r.table),
	)
	return r.tracer.Start(ctx, r.name+"."+op, trace.WithAttributes(attrs...))
}

// fail registra o erro no log e no span e devolve o erro embrulhado.
// Violação de chave única vira apperrors.ErrDuplicate.
func (r *crudRepository[T]) fail(span trace.Span, action string, err error, fields ...zap.Field) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		span.SetStatus(codes.Error, "duplicated key")
		return fmt.Errorf("falha ao %s: %w", action, apperrors.ErrDuplicate)
	}
	r.logger.Error("falha ao "+action, append(fields, zap.String("table", r.table), zap.Error(err))...)
	span.SetStatus(codes.Error, "database error")
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String("error.message", err.Error()),
	)
	return fmt.Errorf("falha ao %s: %w", action, err)
}

// find executa uma listagem filtrada na ordem padrão da entidade
func (r *crudRepository[T]) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]T, error) {
	ctx, span := r.startSpan(ctx, op, "select")
	defer span.End()

	rows := make([]T, 0)
	if r.db == nil {
		span.SetAttributes(attribute.Bool("db.configured", false))
		return rows, nil
	}

	q := r.db.WithContext(ctx).Model(new(T))
	if scope != nil {
		q = scope(q)
	}
	if r.order != "" {
		q = q.Order(r.order)
	}

	if err := q.Find(&rows).Error; err != nil {
		return nil, r.fail(span, "listar "+r.table, err)
	}

	span.SetAttributes(attribute.Int("db.rows", len(rows)))
	span.SetStatus(codes.Ok, "")
	return rows, nil
}

// List retorna todos os registros
func (r *crudRepository[T]) List(ctx context.Context) ([]T, error) {
	return r.find(ctx, "List", nil)
}

// GetByID retorna o registro ou repository.ErrNotFound
func (r *crudRepository[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	ctx, span := r.startSpan(ctx, "GetByID", "select", attribute.Int64("db.id", id))
	defer span.End()

	if r.db == nil {
		return nil, repository.ErrNotFound
	}

	entity := new(T)
	if err := r.db.WithContext(ctx).First(entity, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetAttributes(attribute.Bool("db.found", false))
			return nil, repository.ErrNotFound
		}
		return nil, r.fail(span, "buscar "+r.table, err, zap.Int64("id", id))
	}

	span.SetAttributes(attribute.Bool("db.found", true))
	span.SetStatus(codes.Ok, "")
	return entity, nil
}

// Create insere o registro
func (r *crudRepository[T]) Create(ctx context.Context, entity *T) error {
	ctx, span := r.startSpan(ctx, "Create", "insert")
	defer span.End()

	if r.db == nil {
		span.SetStatus(codes.Error, "storage unavailable")
		return repository.ErrStorageUnavailable
	}

	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return r.fail(span, "inserir em "+r.table, err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Update aplica as colunas informadas. Mapa vazio apenas confirma a existência do id.
func (r *crudRepository[T]) Update(ctx context.Context, id int64, changes map[string]any) error {
	ctx, span := r.startSpan(ctx, "Update", "update",
		attribute.Int64("db.id", id),
		attribute.Int("db.columns", len(changes)),
	)
	defer span.End()

	if r.db == nil {
		span.SetStatus(codes.Error, "storage unavailable")
		return repository.ErrStorageUnavailable
	}

	if err := updateColumns[T](r.db.WithContext(ctx), id, changes); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			span.SetAttributes(attribute.Bool("db.found", false))
			return err
		}
		return r.fail(span, "atualizar "+r.table, err, zap.Int64("id", id))
	}

	span.SetStatus(codes.Ok, "")
	return nil
}

// Delete remove o registro; id inexistente não é erro
func (r *crudRepository[T]) Delete(ctx context.Context, id int64) error {
	ctx, span := r.startSpan(ctx, "Delete", "delete", attribute.Int64("db.id", id))
	defer span.End()

	if r.db == nil {
		span.SetStatus(codes.Error, "storage unavailable")
		return repository.ErrStorageUnavailable
	}

	result := r.db.WithContext(ctx).Delete(new(T), id)
	if result.Error != nil {
		return r.fail(span, "remover de "+r.table, result.Error, zap.Int64("id", id))
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", result.RowsAffected))
	span.SetStatus(codes.Ok, "")
	return nil
}

// reference é uma tabela que aponta para a entidade pela coluna informada
type reference struct {
	model  any
	column string
	what   string
}

// deleteUnreferenced remove o registro id na mesma transação em que confere que nada aponta para ele
func (r *crudRepository[T]) deleteUnreferenced(ctx context.Context, id int64, refs ...reference) error {
	return r.inTx(ctx, "Delete", "delete", func(tx *gorm.DB) error {
		if err := mustNotBeReferenced(tx, id, refs...); err != nil {
			return err
		}
		return tx.Delete(new(T), id).Error
	})
}

// mustNotBeReferenced devolve ErrReferenced quando alguma referência aponta para id
func mustNotBeReferenced(tx *gorm.DB, id int64, refs ...reference) error {
	for _, ref := range refs {
		var count int64
		if err := tx.Model(ref.model).Where(ref.column+" = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%d %s vinculadas: %w", count, ref.what, repository.ErrReferenced)
		}
	}
	return nil
}

// inTx executa fn em uma transação, com os mesmos spans e logs das demais operações
func (r *crudRepository[T]) inTx(ctx context.Context, op, dbOp string, fn func(tx *gorm.DB) error) error {
	ctx, span := r.startSpan(ctx, op, dbOp)
	defer span.End()

	if r.db == nil {
		span.SetStatus(codes.Error, "storage unavailable")
		return repository.ErrStorageUnavailable
	}

	err := r.db.WithContext(ctx).Transaction(fn)
	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
		return nil
	case isDomainError(err):
		span.SetStatus(codes.Error, err.Error())
		return err
	default:
		return r.fail(span, "executar "+op+" em "+r.table, err)
	}
}

func isDomainError(err error) bool {
	return errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrCapacityExceeded) ||
		errors.Is(err, repository.ErrRegistrationClosed) ||
		errors.Is(err, repository.ErrReferenced)
}

// updateColumns atualiza o registro id de T e devolve ErrNotFound quando ele não existe
func updateColumns[T any](db *gorm.DB, id int64, changes map[string]any) error {
	if len(changes) > 0 {
		result := db.Model(new(T)).Where("id = ?", id).Updates(changes)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}
	}

	// MySQL informa 0 linhas quando os valores não mudam; confirmar pela existência
	var count int64
	if err := db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// adjustSeats soma delta ao contador de vagas sem deixá-lo negativo
func adjustSeats(tx *gorm.DB, table string, id int64, delta int) error {
	return tx.Table(table).Where("id = ?", id).
		UpdateColumn("vagas_ocupadas", gorm.Expr("CASE WHEN vagas_ocupadas + ? < 0 THEN 0 ELSE vagas_ocupadas + ? END", delta, delta)).
		Error
}

// reserveSeat ocupa uma vaga se houver capacidade. Retorna ErrCapacityExceeded quando lotado.
func reserveSeat(tx *gorm.DB, table string, id int64) error {
	result := tx.Table(table).
		Where("id = ? AND (vagas_total IS NULL OR vagas_ocupadas < vagas_total)", id).
		UpdateColumn("vagas_ocupadas", gorm.Expr("vagas_ocupadas + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrCapacityExceeded
	}
	return nil
}
