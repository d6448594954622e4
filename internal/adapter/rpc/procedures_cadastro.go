package rpc

import (
	"strings"
	"time"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
)

// EmailInput localiza um registro pelo e-mail
type EmailInput struct {
	Email string `json:"email" validate:"required,email"`
}

func bailarinoProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Bailarino]("bailarinos.list", auth.Public, s.Bailarinos),
		getByIDProcedure[model.Bailarino]("bailarinos.getById", auth.Admin, s.Bailarinos),
		NewMutation("bailarinos.create", auth.Admin, func(call *Call, in model.BailarinoInput) (any, error) {
			b := in.Entity()
			if err := s.Bailarinos.Create(call.Context(), b); err != nil {
				return nil, err
			}
			return CreatedResult{ID: b.ID}, nil
		}),
		updateProcedure[model.Bailarino, model.BailarinoPatch]("bailarinos.update", s.Bailarinos),
		deleteProcedure[model.Bailarino]("bailarinos.delete", s.Bailarinos),
		NewQuery("bailarinos.getByEmail", auth.Public, func(call *Call, in EmailInput) (any, error) {
			return orNull(s.Bailarinos.GetByEmail(call.Context(), strings.TrimSpace(in.Email)))
		}),
	}
}

func cursoProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Curso]("cursos.list", auth.Public, s.Cursos),
		NewQuery("cursos.listPublic", auth.Public, func(call *Call, _ NoInput) (any, error) {
			return s.Cursos.ListAtivos(call.Context())
		}),
		getByIDProcedure[model.Curso]("cursos.getById", auth.Admin, s.Cursos),
		NewMutation("cursos.create", auth.Admin, func(call *Call, in model.CursoInput) (any, error) {
			c := in.Entity()
			if err := s.Cursos.Create(call.Context(), c); err != nil {
				return nil, err
			}
			return CreatedResult{ID: c.ID}, nil
		}),
		updateProcedure[model.Curso, model.CursoPatch]("cursos.update", s.Cursos),
		deleteProcedure[model.Curso]("cursos.delete", s.Cursos),
	}
}

func agendamentoProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Agendamento]("agendamentos.list", auth.Public, s.Agendamentos),
		NewQuery("agendamentos.pendentes", auth.Public, func(call *Call, _ NoInput) (any, error) {
			return s.Agendamentos.ListPendentes(call.Context())
		}),
		NewMutation("agendamentos.create", auth.Public, func(call *Call, in model.AgendamentoInput) (any, error) {
			a := in.Entity()
			if err := s.Agendamentos.Create(call.Context(), a); err != nil {
				return nil, err
			}
			return CreatedResult{ID: a.ID}, nil
		}).RateLimited(),
		NewMutation("agendamentos.update", auth.Admin, func(call *Call, in UpdateInput[model.AgendamentoPatch]) (any, error) {
			changes := model.Changes(in.Data)
			// confirmar sem horário registra o momento da confirmação
			if in.Data.Status != nil && *in.Data.Status == model.AgendamentoConfirmado && in.Data.DataConfirmacao == nil {
				changes["data_confirmacao"] = time.Now().UTC()
			}
			if err := s.Agendamentos.Update(call.Context(), in.ID, changes); err != nil {
				return nil, err
			}
			return success, nil
		}),
		deleteProcedure[model.Agendamento]("agendamentos.delete", s.Agendamentos),
	}
}

func depoimentoProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Depoimento]("depoimentos.list", auth.Public, s.Depoimentos),
		NewQuery("depoimentos.aprovados", auth.Public, func(call *Call, _ NoInput) (any, error) {
			return s.Depoimentos.ListAprovados(call.Context())
		}),
		NewMutation("depoimentos.create", auth.Public, func(call *Call, in model.DepoimentoInput) (any, error) {
			d := in.Entity()
			if err := s.Depoimentos.Create(call.Context(), d); err != nil {
				return nil, err
			}
			return CreatedResult{ID: d.ID}, nil
		}).RateLimited(),
		updateProcedure[model.Depoimento, model.DepoimentoPatch]("depoimentos.update", s.Depoimentos),
		deleteProcedure[model.Depoimento]("depoimentos.delete", s.Depoimentos),
	}
}
