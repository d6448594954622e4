package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// InscricaoRepository implementa repository.InscricaoRepository.
// Inscrições não canceladas ocupam uma vaga do evento.
type InscricaoRepository struct {
	*crudRepository[model.InscricaoEvento]
}

// NewInscricaoRepository cria o repositório de inscrições em eventos
func NewInscricaoRepository(db *gorm.DB, logger *zap.Logger) *InscricaoRepository {
	return &InscricaoRepository{newCRUD[model.InscricaoEvento](db, logger, "InscricaoRepository", "inscricoes_eventos", "created_at DESC")}
}

// ListByEvento retorna as inscrições de um evento
func (r *InscricaoRepository) ListByEvento(ctx context.Context, eventoID int64) ([]model.InscricaoEvento, error) {
	return r.find(ctx, "ListByEvento", func(q *gorm.DB) *gorm.DB {
		return q.Where("evento_id = ?", eventoID)
	})
}

// Create confere o evento, reserva a vaga e copia o valor de inscrição vigente para ValorPago
func (r *InscricaoRepository) Create(ctx context.Context, ins *model.InscricaoEvento) error {
	if ins.StatusPagamento == "" {
		ins.StatusPagamento = model.PagamentoPendente
	}

	return r.inTx(ctx, "Create", "insert", func(tx *gorm.DB) error {
		var evento model.Evento
		if err := tx.First(&evento, ins.EventoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("evento %d: %w", ins.EventoID, repository.ErrNotFound)
			}
			return err
		}

		if !evento.Ativo || !evento.InscricoesAbertas {
			return repository.ErrRegistrationClosed
		}

		if ins.BailarinoID != nil {
			if err := mustExist[model.Bailarino](tx, *ins.BailarinoID, "bailarino"); err != nil {
				return err
			}
		}

		if ins.StatusPagamento != model.PagamentoCancelado {
			if err := reserveSeat(tx, "eventos", evento.ID); err != nil {
				return err
			}
		}

		ins.ValorPago = evento.ValorInscricao
		return tx.Create(ins).Error
	})
}

// Update aplica as alterações e libera ou reocupa a vaga quando a inscrição é cancelada ou reativada
func (r *InscricaoRepository) Update(ctx context.Context, id int64, changes map[string]any) error {
	status, changesStatus := statusPagamento(changes["status_pagamento"])
	if !changesStatus {
		return r.crudRepository.Update(ctx, id, changes)
	}

	return r.inTx(ctx, "Update", "update", func(tx *gorm.DB) error {
		var current model.InscricaoEvento
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		wasCancelled := current.StatusPagamento == model.PagamentoCancelado
		isCancelled := status == model.PagamentoCancelado
		switch {
		case isCancelled && !wasCancelled:
			if err := adjustSeats(tx, "eventos", current.EventoID, -1); err != nil {
				return err
			}
		case wasCancelled && !isCancelled:
			if err := reserveSeat(tx, "eventos", current.EventoID); err != nil {
				return err
			}
		}

		return updateColumns[model.InscricaoEvento](tx, id, changes)
	})
}

// Delete remove a inscrição e libera a vaga se ela não estava cancelada
func (r *InscricaoRepository) Delete(ctx context.Context, id int64) error {
	return r.inTx(ctx, "Delete", "delete", func(tx *gorm.DB) error {
		var current model.InscricaoEvento
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Delete(&model.InscricaoEvento{}, id).Error; err != nil {
			return err
		}

		if current.StatusPagamento != model.PagamentoCancelado {
			return adjustSeats(tx, "eventos", current.EventoID, -1)
		}
		return nil
	})
}

func statusPagamento(v any) (model.StatusPagamento, bool) {
	switch s := v.(type) {
	case model.StatusPagamento:
		return s, true
	case string:
		return model.StatusPagamento(s), true
	}
	return "", false
}
