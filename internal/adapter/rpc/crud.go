package rpc

import (
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
)

// Procedimentos genéricos sobre repository.CRUD

func listProcedure[T any](name string, tier auth.Tier, repo repository.CRUD[T]) Procedure {
	return NewQuery(name, tier, func(call *Call, _ NoInput) (any, error) {
		return repo.List(call.Context())
	})
}

func getByIDProcedure[T any](name string, tier auth.Tier, repo repository.CRUD[T]) Procedure {
	return NewQuery(name, tier, func(call *Call, in IDInput) (any, error) {
		return orNull(repo.GetByID(call.Context(), in.ID))
	})
}

func updateProcedure[T, P any](name string, repo repository.CRUD[T]) Procedure {
	return NewMutation(name, auth.Admin, func(call *Call, in UpdateInput[P]) (any, error) {
		if err := repo.Update(call.Context(), in.ID, model.Changes(in.Data)); err != nil {
			return nil, err
		}
		return success, nil
	})
}

func deleteProcedure[T any](name string, repo repository.CRUD[T]) Procedure {
	return NewMutation(name, auth.Admin, func(call *Call, in IDInput) (any, error) {
		if err := repo.Delete(call.Context(), in.ID); err != nil {
			return nil, err
		}
		return success, nil
	})
}
