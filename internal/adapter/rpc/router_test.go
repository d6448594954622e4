package rpc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/adapter/rpc"
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/app/cobranca"
	"github.com/diillson/dancart-api/internal/app/dashboard"
	"github.com/diillson/dancart-api/internal/app/evento"
	"github.com/diillson/dancart-api/internal/app/matricula"
	"github.com/diillson/dancart-api/internal/app/noticia"
	"github.com/diillson/dancart-api/internal/app/portal"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/infra/metrics"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/diillson/dancart-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	admin  = &model.User{ID: 1, OpenID: "admin-dev", Role: model.RoleAdmin}
	member = &model.User{ID: 2, OpenID: "aluno-1", Role: model.RoleUser}
)

type rpcResponse struct {
	Result *struct {
		Data json.RawMessage `json:"data"`
	} `json:"result"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type fakeSessions struct {
	closed []string
}

func (f *fakeSessions) Logout(_ context.Context, _ *http.Request, user *model.User) []*http.Cookie {
	if user != nil {
		f.closed = append(f.closed, user.OpenID)
	}
	return []*http.Cookie{
		{Name: "app_session_id", Path: "/", MaxAge: -1},
		{Name: auth.DevCookieName, Path: "/", MaxAge: -1},
	}
}

type harness struct {
	engine   *gin.Engine
	db       *gorm.DB
	user     *model.User
	sessions *fakeSessions
}

func services(db *gorm.DB, logger *zap.Logger, sessions rpc.SessionCloser) rpc.Services {
	bailarinos := database.NewBailarinoRepository(db, logger)
	cursos := database.NewCursoRepository(db, logger)
	matriculas := database.NewMatriculaRepository(db, logger)
	mensalidades := database.NewMensalidadeRepository(db, logger)
	eventos := database.NewEventoRepository(db, logger)
	inscricoes := database.NewInscricaoRepository(db, logger)
	noticias := database.NewNoticiaRepository(db, logger)

	return rpc.Services{
		Sessions:     sessions,
		Bailarinos:   bailarinos,
		Cursos:       cursos,
		Matriculas:   matriculas,
		Mensalidades: mensalidades,
		Agendamentos: database.NewAgendamentoRepository(db, logger),
		Depoimentos:  database.NewDepoimentoRepository(db, logger),
		Eventos:      eventos,
		Inscricoes:   inscricoes,
		Noticias:     noticias,
		Matricula:    matricula.NewService(matriculas, cursos, logger),
		Evento:       evento.NewService(eventos, inscricoes, logger),
		Noticia:      noticia.NewService(noticias, logger),
		Dashboard:    dashboard.NewService(database.NewDashboardRepository(db, logger), logger),
		Portal:       portal.NewService(bailarinos, matriculas, mensalidades, logger),
		Cobranca:     cobranca.NewService(matriculas, mensalidades, nil, logger),
	}
}

func newHarness(t *testing.T, db *gorm.DB, opts rpc.Options) *harness {
	logger := testutils.TestLogger(t)
	h := &harness{db: db, sessions: &fakeSessions{}}

	if opts.Metrics == nil {
		opts.Metrics = metrics.NewAPIMetrics(prometheus.NewRegistry())
	}
	router := rpc.NewAppRouter(services(db, logger, h.sessions), opts, logger)

	h.engine = testutils.SetupTestRouter(t)
	h.engine.Use(func(c *gin.Context) {
		if h.user != nil {
			c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), h.user))
		}
		c.Next()
	})
	router.Mount(h.engine.Group("/api/trpc"))
	return h
}

func (h *harness) query(t *testing.T, name string, input any) (*httptest.ResponseRecorder, rpcResponse) {
	path := "/api/trpc/" + name
	if input != nil {
		raw, err := json.Marshal(input)
		require.NoError(t, err)
		path += "?input=" + url.QueryEscape(string(raw))
	}
	resp := testutils.MakeRequest(t, h.engine, http.MethodGet, path, nil, nil)
	var out rpcResponse
	testutils.ParseResponse(t, resp, &out)
	return resp, out
}

func (h *harness) mutate(t *testing.T, name string, input any) (*httptest.ResponseRecorder, rpcResponse) {
	resp := testutils.MakeRequest(t, h.engine, http.MethodPost, "/api/trpc/"+name, input, nil)
	var out rpcResponse
	testutils.ParseResponse(t, resp, &out)
	return resp, out
}

func decode[T any](t *testing.T, out rpcResponse) T {
	t.Helper()
	require.NotNil(t, out.Result, "resposta sem result: %+v", out.Error)
	var v T
	require.NoError(t, json.Unmarshal(out.Result.Data, &v))
	return v
}

func cursoInput() map[string]any {
	return map[string]any{
		"nome":        "Ballet Clássico",
		"modalidade":  "Ballet",
		"nivel":       "iniciante",
		"valorMensal": 15000,
		"vagasTotal":  20,
	}
}

func TestRouter_Envelope(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})

	resp, out := h.query(t, "dashboard.stats", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	testutils.RequireJSONContentType(t, resp)
	stats := decode[model.DashboardStats](t, out)
	assert.Equal(t, "R$ 0,00", stats.ReceitaFormatada)
	assert.Nil(t, out.Error)
}

func TestRouter_UnknownProcedureAndMethod(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})

	resp, out := h.query(t, "cursos.inexistente", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", out.Error.Code)

	resp, out = h.mutate(t, "cursos.list", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
	assert.Equal(t, "METHOD_NOT_SUPPORTED", out.Error.Code)

	h.user = admin
	resp, out = h.query(t, "cursos.create", cursoInput())
	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
	assert.Equal(t, "METHOD_NOT_SUPPORTED", out.Error.Code)
}

func TestRouter_Tiers(t *testing.T) {
	db := testutils.NewTestDB(t)
	h := newHarness(t, db, rpc.Options{})

	resp, out := h.mutate(t, "cursos.create", cursoInput())
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "UNAUTHORIZED", out.Error.Code)
	assert.Equal(t, auth.UnauthenticatedMessage, out.Error.Message)

	h.user = member
	resp, out = h.mutate(t, "cursos.create", cursoInput())
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "FORBIDDEN", out.Error.Code)
	assert.Equal(t, auth.AdminRequiredMessage, out.Error.Message)

	var count int64
	require.NoError(t, db.Model(&model.Curso{}).Count(&count).Error)
	assert.Zero(t, count, "nenhum acesso ao banco antes da autorização")

	h.user = admin
	resp, out = h.mutate(t, "cursos.create", cursoInput())
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	created := decode[rpc.CreatedResult](t, out)
	assert.NotZero(t, created.ID)

	// públicos continuam abertos a qualquer um
	h.user = nil
	resp, out = h.query(t, "cursos.listPublic", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Len(t, decode[[]model.Curso](t, out), 1)
}

func TestRouter_Validation(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})
	h.user = admin

	input := cursoInput()
	input["nivel"] = "mestre"
	resp, out := h.mutate(t, "cursos.create", input)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "BAD_REQUEST", out.Error.Code)
	assert.Contains(t, string(out.Error.Details), `"nivel"`)

	resp, out = h.mutate(t, "depoimentos.create", map[string]any{"nome": "Ana", "avaliacao": 6, "depoimento": "Ótimo"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, string(out.Error.Details), `"avaliacao"`)

	resp, out = h.mutate(t, "matriculas.update", map[string]any{"id": 1, "data": map[string]any{"status": "trancada"}})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "BAD_REQUEST", out.Error.Code)

	resp = testutils.MakeRequest(t, h.engine, http.MethodPost, "/api/trpc/cursos.create", "{nome", nil)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	for _, field := range []string{"valorMensal", "vagasTotal"} {
		input := cursoInput()
		delete(input, field)
		resp, out = h.mutate(t, "cursos.create", input)
		assert.Equal(t, http.StatusBadRequest, resp.Code, field)
		assert.Contains(t, string(out.Error.Details), `"`+field+`"`)
	}

	resp, out = h.mutate(t, "eventos.create", map[string]any{
		"titulo":     "Festival",
		"tipo":       "festival",
		"dataEvento": "2025-07-20T19:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, string(out.Error.Details), `"valorInscricao"`)

	resp, out = h.mutate(t, "mensalidades.create", map[string]any{
		"matriculaId":    1,
		"mesReferencia":  "2025-03-01",
		"dataVencimento": "2025-03-10",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, string(out.Error.Details), `"valorOriginal"`)

	var count int64
	require.NoError(t, h.db.Model(&model.Curso{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRouter_CrudSemantics(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})
	h.user = admin

	_, out := h.mutate(t, "cursos.create", cursoInput())
	id := decode[rpc.CreatedResult](t, out).ID

	resp, out := h.mutate(t, "cursos.update", map[string]any{"id": id, "data": map[string]any{"horario": "19:00", "vagasOcupadas": 7}})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.True(t, decode[rpc.SuccessResult](t, out).Success)

	_, out = h.query(t, "cursos.getById", map[string]any{"id": id})
	curso := decode[model.Curso](t, out)
	require.NotNil(t, curso.Horario)
	assert.Equal(t, "19:00", *curso.Horario)
	assert.Zero(t, curso.VagasOcupadas, "o contador de vagas só muda pelas matrículas")
	assert.Equal(t, "Ballet Clássico", curso.Nome)

	resp, out = h.mutate(t, "cursos.update", map[string]any{"id": 999, "data": map[string]any{"horario": "19:00"}})
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", out.Error.Code)

	resp, _ = h.mutate(t, "cursos.delete", map[string]any{"id": id})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	resp, _ = h.mutate(t, "cursos.delete", map[string]any{"id": id})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp, out = h.query(t, "cursos.getById", map[string]any{"id": id})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, "null", string(out.Result.Data))
}

func TestRouter_DeleteReferenced(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})
	h.user = admin

	_, out := h.mutate(t, "bailarinos.create", map[string]any{"nome": "Lia", "dataNascimento": "2011-08-09"})
	bailarinoID := decode[rpc.CreatedResult](t, out).ID
	_, out = h.mutate(t, "cursos.create", cursoInput())
	cursoID := decode[rpc.CreatedResult](t, out).ID

	resp, out := h.mutate(t, "matriculas.create", map[string]any{
		"bailarinoId": bailarinoID,
		"cursoId":     cursoID,
		"dataInicio":  "2025-02-01",
		"tipoBolsa":   "nenhuma",
	})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	matriculaID := decode[rpc.CreatedResult](t, out).ID

	resp, out = h.mutate(t, "cursos.delete", map[string]any{"id": cursoID})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "CONFLICT", out.Error.Code)

	resp, out = h.mutate(t, "bailarinos.delete", map[string]any{"id": bailarinoID})
	assert.Equal(t, http.StatusConflict, resp.Code)
	assert.Equal(t, "CONFLICT", out.Error.Code)

	_, out = h.query(t, "matriculas.listDetalhada", nil)
	require.Len(t, decode[[]model.MatriculaDetalhada](t, out), 1)

	resp, _ = h.mutate(t, "matriculas.delete", map[string]any{"id": matriculaID})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	resp, _ = h.mutate(t, "cursos.delete", map[string]any{"id": cursoID})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	resp, _ = h.mutate(t, "bailarinos.delete", map[string]any{"id": bailarinoID})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
}

func TestRouter_SuperjsonEnvelope(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})
	h.user = admin

	_, out := h.mutate(t, "cursos.create", map[string]any{"json": cursoInput()})
	id := decode[rpc.CreatedResult](t, out).ID

	resp, out := h.query(t, "cursos.getById", map[string]any{"json": map[string]any{"id": id}})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, id, decode[model.Curso](t, out).ID)
}

func TestRouter_PublicRateLimit(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{
		Limiter:      ratelimit.NewMemoryLimiter(),
		PublicLimit:  1,
		PublicPeriod: time.Hour,
	})

	depoimento := map[string]any{"nome": "Ana", "avaliacao": 5, "depoimento": "Ótimo"}
	resp, _ := h.mutate(t, "depoimentos.create", depoimento)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, "1", resp.Header().Get("X-RateLimit-Limit"))

	resp, out := h.mutate(t, "depoimentos.create", depoimento)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", out.Error.Code)
	assert.NotEmpty(t, resp.Header().Get("Retry-After"))

	// consultas não são limitadas
	resp, _ = h.query(t, "depoimentos.aprovados", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
}

func TestRouter_WithoutStorage(t *testing.T) {
	h := newHarness(t, nil, rpc.Options{})

	resp, out := h.query(t, "bailarinos.list", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Equal(t, "[]", string(out.Result.Data))

	resp, out = h.query(t, "dashboard.stats", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.Zero(t, decode[model.DashboardStats](t, out).TotalBailarinos)

	resp, out = h.mutate(t, "agendamentos.create", map[string]any{
		"nome": "Ana", "email": "ana@example.com", "modalidade": "Jazz", "dataPreferencia": "2025-06-01",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "SERVICE_UNAVAILABLE", out.Error.Code)
}

func TestRouter_Auth(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})

	_, out := h.query(t, "auth.me", nil)
	assert.Equal(t, "null", string(out.Result.Data))

	h.user = admin
	_, out = h.query(t, "auth.me", nil)
	assert.Equal(t, "admin-dev", decode[model.User](t, out).OpenID)

	resp, out := h.mutate(t, "auth.logout", nil)
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	assert.True(t, decode[rpc.SuccessResult](t, out).Success)
	assert.Equal(t, []string{"admin-dev"}, h.sessions.closed)

	cookies := strings.Join(resp.Header().Values("Set-Cookie"), "\n")
	assert.Contains(t, cookies, "app_session_id=")
	assert.Contains(t, cookies, auth.DevCookieName+"=")

	resp, out = h.mutate(t, "auth.devLogin", nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "FORBIDDEN", out.Error.Code)
}
