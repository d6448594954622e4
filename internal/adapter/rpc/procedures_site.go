package rpc

import (
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
)

func noticiaProcedures(s Services) []Procedure {
	return []Procedure{
		listProcedure[model.Noticia]("noticias.list", auth.Admin, s.Noticias),
		NewQuery("noticias.publicadas", auth.Public, func(call *Call, _ NoInput) (any, error) {
			return s.Noticia.Publicadas(call.Context())
		}),
		NewQuery("noticias.getById", auth.Public, func(call *Call, in IDInput) (any, error) {
			return orNull(s.Noticia.Get(call.Context(), in.ID, call.User.IsAdmin()))
		}),
		NewMutation("noticias.create", auth.Admin, func(call *Call, in model.NoticiaInput) (any, error) {
			n, err := s.Noticia.Create(call.Context(), in)
			if err != nil {
				return nil, err
			}
			return CreatedResult{ID: n.ID}, nil
		}),
		NewMutation("noticias.update", auth.Admin, func(call *Call, in UpdateInput[model.NoticiaPatch]) (any, error) {
			if err := s.Noticia.Update(call.Context(), in.ID, in.Data); err != nil {
				return nil, err
			}
			return success, nil
		}),
		deleteProcedure[model.Noticia]("noticias.delete", s.Noticias),
	}
}

func portalProcedures(s Services) []Procedure {
	return []Procedure{
		NewQuery("portal.aluno", auth.Public, func(call *Call, in EmailInput) (any, error) {
			return s.Portal.Aluno(call.Context(), in.Email)
		}),
	}
}
