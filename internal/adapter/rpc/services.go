package rpc

import (
	"context"
	"net/http"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/app/cobranca"
	"github.com/diillson/dancart-api/internal/app/dashboard"
	"github.com/diillson/dancart-api/internal/app/evento"
	"github.com/diillson/dancart-api/internal/app/matricula"
	"github.com/diillson/dancart-api/internal/app/noticia"
	"github.com/diillson/dancart-api/internal/app/portal"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"go.uber.org/zap"
)

// SessionCloser encerra a sessão devolvendo os cookies a apagar
type SessionCloser interface {
	Logout(ctx context.Context, r *http.Request, user *model.User) []*http.Cookie
}

// Services reúne as dependências dos procedimentos
type Services struct {
	Authenticator auth.Authenticator
	Sessions      SessionCloser

	Bailarinos   repository.BailarinoRepository
	Cursos       repository.CursoRepository
	Matriculas   repository.MatriculaRepository
	Mensalidades repository.MensalidadeRepository
	Agendamentos repository.AgendamentoRepository
	Depoimentos  repository.DepoimentoRepository
	Eventos      repository.EventoRepository
	Inscricoes   repository.InscricaoRepository
	Noticias     repository.NoticiaRepository

	Matricula *matricula.Service
	Evento    *evento.Service
	Noticia   *noticia.Service
	Dashboard *dashboard.Service
	Portal    *portal.Service
	Cobranca  *cobranca.Service
}

// NewAppRouter cria o roteador com todos os procedimentos da aplicação
func NewAppRouter(s Services, opts Options, logger *zap.Logger) *Router {
	r := NewRouter(opts, logger)
	r.Register(authProcedures(s)...)
	r.Register(bailarinoProcedures(s)...)
	r.Register(cursoProcedures(s)...)
	r.Register(matriculaProcedures(s)...)
	r.Register(mensalidadeProcedures(s)...)
	r.Register(dashboardProcedures(s)...)
	r.Register(agendamentoProcedures(s)...)
	r.Register(depoimentoProcedures(s)...)
	r.Register(eventoProcedures(s)...)
	r.Register(inscricaoProcedures(s)...)
	r.Register(noticiaProcedures(s)...)
	r.Register(portalProcedures(s)...)

	logger.Info("Procedimentos RPC registrados", zap.Int("total", len(r.procedures)))
	return r
}
