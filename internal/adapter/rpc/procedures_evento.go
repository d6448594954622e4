package rpc

import (
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
)

// EventoIDInput filtra por evento
type EventoIDInput struct {
	EventoID int64 `json:"eventoId" validate:"required,min=1"`
}

func eventoProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Evento]("eventos.list", auth.Admin, s.Eventos),
		NewQuery("eventos.ativos", auth.Public, func(call *Call, _ NoInput) (any, error) {
			return s.Eventos.ListAtivos(call.Context())
		}),
		NewQuery("eventos.getById", auth.Public, func(call *Call, in IDInput) (any, error) {
			return orNull(s.Evento.Get(call.Context(), in.ID))
		}),
		NewMutation("eventos.create", auth.Admin, func(call *Call, in model.EventoInput) (any, error) {
			e, err := s.Evento.Create(call.Context(), in)
			if err != nil {
				return nil, err
			}
			return CreatedResult{ID: e.ID}, nil
		}),
		NewMutation("eventos.update", auth.Admin, func(call *Call, in UpdateInput[model.EventoPatch]) (any, error) {
			if err := s.Evento.Update(call.Context(), in.ID, in.Data); err != nil {
				return nil, err
			}
			return success, nil
		}),
		deleteProcedure[model.Evento]("eventos.delete", s.Eventos),
	}
}

func inscricaoProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.InscricaoEvento]("inscricoesEventos.list", auth.Admin, s.Inscricoes),
		NewQuery("inscricoesEventos.getByEventoId", auth.Admin, func(call *Call, in EventoIDInput) (any, error) {
			return s.Inscricoes.ListByEvento(call.Context(), in.EventoID)
		}),
		NewMutation("inscricoesEventos.create", auth.Public, func(call *Call, in model.InscricaoInput) (any, error) {
			ins, err := s.Evento.Inscrever(call.Context(), in)
			if err != nil {
				return nil, err
			}
			return CreatedResult{ID: ins.ID}, nil
		}).RateLimited(),
		updateProcedure[model.InscricaoEvento, model.InscricaoPatch]("inscricoesEventos.update", s.Inscricoes),
		deleteProcedure[model.InscricaoEvento]("inscricoesEventos.delete", s.Inscricoes),
	}
}
