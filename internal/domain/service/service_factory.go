package service

import (
	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/app/cobranca"
	"github.com/diillson/dancart-api/internal/app/dashboard"
	"github.com/diillson/dancart-api/internal/app/evento"
	"github.com/diillson/dancart-api/internal/app/matricula"
	"github.com/diillson/dancart-api/internal/app/noticia"
	"github.com/diillson/dancart-api/internal/app/portal"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/internal/infra/metrics"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories agrupa o acesso a dados de todas as entidades
type Repositories struct {
	Users        repository.UserRepository
	Bailarinos   repository.BailarinoRepository
	Cursos       repository.CursoRepository
	Matriculas   repository.MatriculaRepository
	Mensalidades repository.MensalidadeRepository
	Agendamentos repository.AgendamentoRepository
	Depoimentos  repository.DepoimentoRepository
	Eventos      repository.EventoRepository
	Inscricoes   repository.InscricaoRepository
	Noticias     repository.NoticiaRepository
	Dashboard    repository.DashboardRepository
}

// Services contém todos os serviços da aplicação
type Services struct {
	Repos     Repositories
	Users     *auth.UserService
	Matricula *matricula.Service
	Evento    *evento.Service
	Noticia   *noticia.Service
	Dashboard *dashboard.Service
	Portal    *portal.Service
	Cobranca  *cobranca.Service
}

// NewRepositories cria os repositórios sobre a conexão informada.
// db nil produz repositórios em modo degradado: leituras vazias e escritas recusadas.
func NewRepositories(db *gorm.DB, logger *zap.Logger) Repositories {
	return Repositories{
		Users:        database.NewUserRepository(db, logger),
		Bailarinos:   database.NewBailarinoRepository(db, logger),
		Cursos:       database.NewCursoRepository(db, logger),
		Matriculas:   database.NewMatriculaRepository(db, logger),
		Mensalidades: database.NewMensalidadeRepository(db, logger),
		Agendamentos: database.NewAgendamentoRepository(db, logger),
		Depoimentos:  database.NewDepoimentoRepository(db, logger),
		Eventos:      database.NewEventoRepository(db, logger),
		Inscricoes:   database.NewInscricaoRepository(db, logger),
		Noticias:     database.NewNoticiaRepository(db, logger),
		Dashboard:    database.NewDashboardRepository(db, logger),
	}
}

// NewServices cria todos os serviços necessários
func NewServices(db *gorm.DB, ownerOpenID string, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *Services {
	repos := NewRepositories(db, logger)

	return &Services{
		Repos:     repos,
		Users:     auth.NewUserService(repos.Users, ownerOpenID, logger),
		Matricula: matricula.NewService(repos.Matriculas, repos.Cursos, logger),
		Evento:    evento.NewService(repos.Eventos, repos.Inscricoes, logger),
		Noticia:   noticia.NewService(repos.Noticias, logger),
		Dashboard: dashboard.NewService(repos.Dashboard, logger),
		Portal:    portal.NewService(repos.Bailarinos, repos.Matriculas, repos.Mensalidades, logger),
		Cobranca:  cobranca.NewService(repos.Matriculas, repos.Mensalidades, apiMetrics, logger),
	}
}
