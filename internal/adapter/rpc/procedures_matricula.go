package rpc

import (
	"time"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
)

// BailarinoIDInput filtra por bailarino
type BailarinoIDInput struct {
	BailarinoID int64 `json:"bailarinoId" validate:"required,min=1"`
}

// CursoIDInput filtra por curso
type CursoIDInput struct {
	CursoID int64 `json:"cursoId" validate:"required,min=1"`
}

// MatriculaIDInput filtra por matrícula
type MatriculaIDInput struct {
	MatriculaID int64 `json:"matriculaId" validate:"required,min=1"`
}

// MatriculaIDsInput filtra por várias matrículas
type MatriculaIDsInput struct {
	MatriculaIDs []int64 `json:"matriculaIds" validate:"required,dive,min=1"`
}

func matriculaProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Matricula]("matriculas.list", auth.Public, s.Matriculas),
		NewQuery("matriculas.listDetalhada", auth.Admin, func(call *Call, _ NoInput) (any, error) {
			return s.Matriculas.ListDetalhadas(call.Context())
		}),
		getByIDProcedure[model.Matricula]("matriculas.getById", auth.Admin, s.Matriculas),
		NewQuery("matriculas.getByBailarinoId", auth.Public, func(call *Call, in BailarinoIDInput) (any, error) {
			return s.Matriculas.ListByBailarino(call.Context(), in.BailarinoID)
		}),
		NewQuery("matriculas.getByCursoId", auth.Admin, func(call *Call, in CursoIDInput) (any, error) {
			return s.Matriculas.ListByCurso(call.Context(), in.CursoID)
		}),
		NewMutation("matriculas.create", auth.Admin, func(call *Call, in model.MatriculaInput) (any, error) {
			m, err := s.Matricula.Create(call.Context(), in)
			if err != nil {
				return nil, err
			}
			return CreatedResult{ID: m.ID}, nil
		}),
		NewMutation("matriculas.update", auth.Admin, func(call *Call, in UpdateInput[model.MatriculaPatch]) (any, error) {
			if err := s.Matricula.Update(call.Context(), in.ID, in.Data); err != nil {
				return nil, err
			}
			return success, nil
		}),
		deleteProcedure[model.Matricula]("matriculas.delete", s.Matriculas),
	}
}

func mensalidadeProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Mensalidade]("mensalidades.list", auth.Admin, s.Mensalidades),
		getByIDProcedure[model.Mensalidade]("mensalidades.getById", auth.Admin, s.Mensalidades),
		NewQuery("mensalidades.getByMatriculaId", auth.Admin, func(call *Call, in MatriculaIDInput) (any, error) {
			return s.Mensalidades.ListByMatricula(call.Context(), in.MatriculaID)
		}),
		NewQuery("mensalidades.getByMatriculaIds", auth.Public, func(call *Call, in MatriculaIDsInput) (any, error) {
			return s.Mensalidades.ListByMatriculas(call.Context(), in.MatriculaIDs)
		}),
		NewMutation("mensalidades.create", auth.Admin, func(call *Call, in model.MensalidadeInput) (any, error) {
			m := in.Entity()
			if err := s.Mensalidades.Create(call.Context(), m); err != nil {
				return nil, err
			}
			return CreatedResult{ID: m.ID}, nil
		}),
		updateProcedure[model.Mensalidade, model.MensalidadePatch]("mensalidades.update", s.Mensalidades),
		deleteProcedure[model.Mensalidade]("mensalidades.delete", s.Mensalidades),
		NewMutation("mensalidades.gerarLote", auth.Admin, func(call *Call, in model.GerarLoteInput) (any, error) {
			return s.Cobranca.GerarLote(call.Context(), *in.MesReferencia, time.Now())
		}),
	}
}

func dashboardProcedures(s Services) []Procedure {
	return []Procedure{
		NewQuery("dashboard.stats", auth.Public, func(call *Call, _ NoInput) (any, error) {
			return s.Dashboard.Stats(call.Context())
		}),
		NewQuery("dashboard.matriculasPorCurso", auth.Public, func(call *Call, _ NoInput) (any, error) {
			return s.Dashboard.MatriculasPorCurso(call.Context())
		}),
	}
}
