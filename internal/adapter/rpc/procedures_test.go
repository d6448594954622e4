package rpc_test

import (
	"net/http"
	"testing"

	"github.com/diillson/dancart-api/internal/adapter/rpc"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcedures_RegisteredTiers(t *testing.T) {
	router := rpc.NewAppRouter(services(nil, testutils.TestLogger(t), nil), rpc.Options{}, testutils.TestLogger(t))
	procs := router.Procedures()

	tests := []struct {
		name    string
		kind    rpc.Kind
		tier    string
		limited bool
	}{
		{"bailarinos.list", rpc.KindQuery, "public", false},
		{"bailarinos.getById", rpc.KindQuery, "admin", false},
		{"bailarinos.getByEmail", rpc.KindQuery, "public", false},
		{"cursos.listPublic", rpc.KindQuery, "public", false},
		{"matriculas.listDetalhada", rpc.KindQuery, "admin", false},
		{"matriculas.getByBailarinoId", rpc.KindQuery, "public", false},
		{"mensalidades.list", rpc.KindQuery, "admin", false},
		{"mensalidades.getByMatriculaIds", rpc.KindQuery, "public", false},
		{"mensalidades.gerarLote", rpc.KindMutation, "admin", false},
		{"dashboard.stats", rpc.KindQuery, "public", false},
		{"agendamentos.create", rpc.KindMutation, "public", true},
		{"agendamentos.update", rpc.KindMutation, "admin", false},
		{"depoimentos.create", rpc.KindMutation, "public", true},
		{"eventos.list", rpc.KindQuery, "admin", false},
		{"eventos.getById", rpc.KindQuery, "public", false},
		{"inscricoesEventos.create", rpc.KindMutation, "public", true},
		{"inscricoesEventos.getByEventoId", rpc.KindQuery, "admin", false},
		{"noticias.publicadas", rpc.KindQuery, "public", false},
		{"noticias.create", rpc.KindMutation, "admin", false},
		{"portal.aluno", rpc.KindQuery, "public", false},
		{"auth.me", rpc.KindQuery, "public", false},
		{"auth.logout", rpc.KindMutation, "public", false},
		{"auth.devLogin", rpc.KindMutation, "public", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, found := procs[tt.name]
			require.True(t, found)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.tier, p.Tier.String())
			assert.Equal(t, tt.limited, p.Limited)
		})
	}
}

func TestProcedures_EventoFeeCapture(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})
	h.user = admin

	_, out := h.mutate(t, "eventos.create", map[string]any{
		"titulo":         "Festival de Inverno",
		"tipo":           "festival",
		"dataEvento":     "2025-07-20T19:30",
		"valorInscricao": 50,
		"vagasTotal":     2,
	})
	eventoID := decode[rpc.CreatedResult](t, out).ID

	h.user = nil
	_, out = h.query(t, "eventos.getById", map[string]any{"id": eventoID})
	assert.Equal(t, int64(5000), decode[model.Evento](t, out).ValorInscricao)

	resp, out := h.mutate(t, "inscricoesEventos.create", map[string]any{
		"eventoId":          eventoID,
		"nomeParticipante":  "Clara",
		"emailParticipante": "clara@example.com",
	})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	inscricaoID := decode[rpc.CreatedResult](t, out).ID

	h.user = admin
	resp, _ = h.mutate(t, "eventos.update", map[string]any{"id": eventoID, "data": map[string]any{"valorInscricao": 80}})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	_, out = h.query(t, "inscricoesEventos.getByEventoId", map[string]any{"eventoId": eventoID})
	inscricoes := decode[[]model.InscricaoEvento](t, out)
	require.Len(t, inscricoes, 1)
	assert.Equal(t, inscricaoID, inscricoes[0].ID)
	assert.Equal(t, int64(5000), inscricoes[0].ValorPago)

	resp, _ = h.mutate(t, "eventos.update", map[string]any{"id": eventoID, "data": map[string]any{"inscricoesAbertas": false}})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	resp, out = h.mutate(t, "inscricoesEventos.create", map[string]any{
		"eventoId":          eventoID,
		"nomeParticipante":  "Bia",
		"emailParticipante": "bia@example.com",
	})
	assert.Equal(t, http.StatusPreconditionFailed, resp.Code)
	assert.Equal(t, "PRECONDITION_FAILED", out.Error.Code)

	_, out = h.query(t, "eventos.getById", map[string]any{"id": 999})
	assert.Equal(t, "null", string(out.Result.Data))
}

func TestProcedures_AgendamentoConfirmacao(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})

	_, out := h.mutate(t, "agendamentos.create", map[string]any{
		"nome":            "Ana",
		"email":           "ana@example.com",
		"modalidade":      "Jazz",
		"dataPreferencia": "2025-06-01",
		"idade":           12,
	})
	id := decode[rpc.CreatedResult](t, out).ID

	_, out = h.query(t, "agendamentos.pendentes", nil)
	require.Len(t, decode[[]model.Agendamento](t, out), 1)

	h.user = admin
	resp, _ := h.mutate(t, "agendamentos.update", map[string]any{"id": id, "data": map[string]any{"status": "confirmado"}})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)

	_, out = h.query(t, "agendamentos.list", nil)
	list := decode[[]model.Agendamento](t, out)
	require.Len(t, list, 1)
	assert.Equal(t, model.AgendamentoConfirmado, list[0].Status)
	assert.NotNil(t, list[0].DataConfirmacao)

	_, out = h.query(t, "agendamentos.pendentes", nil)
	assert.Empty(t, decode[[]model.Agendamento](t, out))
}

func TestProcedures_MatriculaDescontoEPortal(t *testing.T) {
	db := testutils.NewTestDB(t)
	h := newHarness(t, db, rpc.Options{})
	h.user = admin

	_, out := h.mutate(t, "bailarinos.create", map[string]any{
		"nome":           "Joana",
		"dataNascimento": "2010-04-02",
		"email":          "joana@example.com",
	})
	bailarinoID := decode[rpc.CreatedResult](t, out).ID

	_, out = h.mutate(t, "cursos.create", cursoInput())
	cursoID := decode[rpc.CreatedResult](t, out).ID

	resp, out := h.mutate(t, "matriculas.create", map[string]any{
		"bailarinoId":            bailarinoID,
		"cursoId":                cursoID,
		"dataInicio":             "2025-02-01",
		"tipoBolsa":              "parcial",
		"percentualBolsa":        30,
		"valorMensalComDesconto": 10500,
	})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	matriculaID := decode[rpc.CreatedResult](t, out).ID

	resp, out = h.mutate(t, "matriculas.create", map[string]any{
		"bailarinoId":            bailarinoID,
		"cursoId":                cursoID,
		"dataInicio":             "2025-02-01",
		"tipoBolsa":              "parcial",
		"percentualBolsa":        30,
		"valorMensalComDesconto": 9000,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "BAD_REQUEST", out.Error.Code)

	_, out = h.query(t, "matriculas.listDetalhada", nil)
	detalhadas := decode[[]model.MatriculaDetalhada](t, out)
	require.Len(t, detalhadas, 1)
	assert.Equal(t, "Joana", detalhadas[0].BailarinoNome)
	assert.Equal(t, int64(10500), detalhadas[0].ValorMensalComDesconto)

	resp, out = h.mutate(t, "mensalidades.gerarLote", map[string]any{"mesReferencia": "2025-03-15"})
	testutils.RequireHTTPStatus(t, resp, http.StatusOK)
	lote := decode[model.LoteResultado](t, out)
	assert.Equal(t, 1, lote.Criadas)

	h.user = nil
	_, out = h.query(t, "portal.aluno", map[string]any{"email": "joana@example.com"})
	aluno := decode[model.PortalAluno](t, out)
	require.NotNil(t, aluno.Bailarino)
	require.Len(t, aluno.Matriculas, 1)
	assert.Equal(t, matriculaID, aluno.Matriculas[0].ID)
	require.Len(t, aluno.Mensalidades, 1)
	assert.Equal(t, int64(10500), aluno.Mensalidades[0].ValorOriginal)

	_, out = h.query(t, "mensalidades.getByMatriculaIds", map[string]any{"matriculaIds": []int64{matriculaID}})
	assert.Len(t, decode[[]model.Mensalidade](t, out), 1)

	_, out = h.query(t, "bailarinos.getByEmail", map[string]any{"email": "ninguem@example.com"})
	assert.Equal(t, "null", string(out.Result.Data))
}

func TestProcedures_Noticias(t *testing.T) {
	h := newHarness(t, testutils.NewTestDB(t), rpc.Options{})
	h.user = admin

	_, out := h.mutate(t, "noticias.create", map[string]any{"titulo": "Rascunho", "conteudo": "...", "categoria": "Geral"})
	rascunhoID := decode[rpc.CreatedResult](t, out).ID

	resp, _ := h.mutate(t, "noticias.create", map[string]any{"titulo": "X", "conteudo": "...", "categoria": "Fofoca"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	_, out = h.query(t, "noticias.getById", map[string]any{"id": rascunhoID})
	assert.Equal(t, "Rascunho", decode[model.Noticia](t, out).Titulo)

	h.user = nil
	_, out = h.query(t, "noticias.getById", map[string]any{"id": rascunhoID})
	assert.Equal(t, "null", string(out.Result.Data))

	_, out = h.query(t, "noticias.publicadas", nil)
	assert.Empty(t, decode[[]model.Noticia](t, out))
}
