package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
)

var (
	// ErrNotFound indica que o registro pedido não existe
	ErrNotFound = apperrors.ErrNotFound

	// ErrStorageUnavailable indica que nenhum banco está configurado. Somente escritas o devolvem.
	ErrStorageUnavailable = fmt.Errorf("banco de dados não configurado: %w", apperrors.ErrServiceUnavailable)

	// ErrCapacityExceeded indica que não há vagas no curso ou evento
	ErrCapacityExceeded = fmt.Errorf("vagas esgotadas: %w", apperrors.ErrConflict)

	// ErrRegistrationClosed indica evento inativo ou com inscrições encerradas
	ErrRegistrationClosed = fmt.Errorf("inscrições encerradas para este evento: %w", apperrors.ErrPrecondition)

	// ErrReferenced indica que outros registros ainda apontam para o que se quer remover
	ErrReferenced = fmt.Errorf("registro em uso: %w", apperrors.ErrConflict)
)

// CRUD é o contrato comum de acesso a uma entidade.
// Listagens sem banco configurado devolvem vazio; escritas devolvem ErrStorageUnavailable.
type CRUD[T any] interface {
	// List retorna todos os registros na ordem padrão da entidade
	List(ctx context.Context) ([]T, error)

	// GetByID retorna o registro ou ErrNotFound
	GetByID(ctx context.Context, id int64) (*T, error)

	// Create insere o registro e preenche seu ID
	Create(ctx context.Context, entity *T) error

	// Update aplica apenas as colunas informadas; ErrNotFound se o id não existe
	Update(ctx context.Context, id int64, changes map[string]any) error

	// Delete remove o registro; id inexistente não é erro.
	// Registro ainda referenciado devolve ErrReferenced.
	Delete(ctx context.Context, id int64) error
}

// UserRepository persiste usuários identificados pelo openId
type UserRepository interface {
	GetByOpenID(ctx context.Context, openID string) (*model.User, error)
	Upsert(ctx context.Context, user model.UpsertUser) error
}

// BailarinoRepository acessa bailarinos
type BailarinoRepository interface {
	CRUD[model.Bailarino]
	GetByEmail(ctx context.Context, email string) (*model.Bailarino, error)
}

// CursoRepository acessa cursos
type CursoRepository interface {
	CRUD[model.Curso]
	ListAtivos(ctx context.Context) ([]model.Curso, error)
}

// MatriculaRepository acessa matrículas e mantém o contador de vagas do curso
// na mesma transação da escrita.
type MatriculaRepository interface {
	CRUD[model.Matricula]
	ListByBailarino(ctx context.Context, bailarinoID int64) ([]model.Matricula, error)
	ListByCurso(ctx context.Context, cursoID int64) ([]model.Matricula, error)
	ListByStatus(ctx context.Context, status model.MatriculaStatus) ([]model.Matricula, error)
	ListDetalhadas(ctx context.Context) ([]model.MatriculaDetalhada, error)
}

// MensalidadeRepository acessa mensalidades
type MensalidadeRepository interface {
	CRUD[model.Mensalidade]
	ListByMatricula(ctx context.Context, matriculaID int64) ([]model.Mensalidade, error)
	ListByMatriculas(ctx context.Context, matriculaIDs []int64) ([]model.Mensalidade, error)
	ListByMes(ctx context.Context, mes model.Date) ([]model.Mensalidade, error)
	CreateBatch(ctx context.Context, mensalidades []*model.Mensalidade) error
	MarkOverdue(ctx context.Context, today model.Date) (int64, error)
}

// AgendamentoRepository acessa agendamentos de aula experimental
type AgendamentoRepository interface {
	CRUD[model.Agendamento]
	ListPendentes(ctx context.Context) ([]model.Agendamento, error)
}

// DepoimentoRepository acessa depoimentos
type DepoimentoRepository interface {
	CRUD[model.Depoimento]
	ListAprovados(ctx context.Context) ([]model.Depoimento, error)
}

// EventoRepository acessa eventos
type EventoRepository interface {
	CRUD[model.Evento]
	ListAtivos(ctx context.Context) ([]model.Evento, error)
}

// InscricaoRepository acessa inscrições e mantém o contador de vagas do evento.
// Create valida o evento e copia o valor de inscrição vigente para ValorPago.
type InscricaoRepository interface {
	CRUD[model.InscricaoEvento]
	ListByEvento(ctx context.Context, eventoID int64) ([]model.InscricaoEvento, error)
}

// NoticiaRepository acessa notícias
type NoticiaRepository interface {
	CRUD[model.Noticia]
	ListPublicadas(ctx context.Context) ([]model.Noticia, error)
	IncrementViews(ctx context.Context, id int64) error
}

// DashboardRepository calcula os agregados do painel
type DashboardRepository interface {
	Stats(ctx context.Context, since time.Time) (*model.DashboardStats, error)
	MatriculasPorCurso(ctx context.Context) ([]model.MatriculasPorCurso, error)
}
