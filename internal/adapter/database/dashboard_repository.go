package database

import (
	"context"
	"fmt"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardRepository implementa repository.DashboardRepository
type DashboardRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewDashboardRepository cria o repositório de agregados do painel
func NewDashboardRepository(db *gorm.DB, logger *zap.Logger) *DashboardRepository {
	return &DashboardRepository{
		db:     db,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("dancart.repository.dashboard"),
	}
}

// Stats conta registros ativos, soma a receita paga desde since e conta mensalidades atrasadas.
// Sem banco configurado, todos os indicadores são zero.
func (r *DashboardRepository) Stats(ctx context.Context, since time.Time) (*model.DashboardStats, error) {
	ctx, span := r.tracer.Start(ctx, "DashboardRepository.Stats",
		trace.WithAttributes(attribute.String("db.operation", "aggregate")),
	)
	defer span.End()

	stats := &model.DashboardStats{}
	if r.db == nil {
		return stats, nil
	}

	db := r.db.WithContext(ctx)
	steps := []struct {
		what string
		run  func() error
	}{
		{"bailarinos ativos", func() error {
			return db.Model(&model.Bailarino{}).Where("ativo = ?", true).Count(&stats.TotalBailarinos).Error
		}},
		{"cursos ativos", func() error {
			return db.Model(&model.Curso{}).Where("ativo = ?", true).Count(&stats.TotalCursos).Error
		}},
		{"matrículas ativas", func() error {
			return db.Model(&model.Matricula{}).Where("status = ?", model.MatriculaAtiva).Count(&stats.TotalMatriculasAtivas).Error
		}},
		{"receita", func() error {
			return db.Model(&model.Mensalidade{}).
				Select("COALESCE(SUM(valor_pago), 0)").
				Where("status = ? AND data_pagamento >= ?", model.MensalidadePaga, since).
				Scan(&stats.ReceitaMensal).Error
		}},
		{"inadimplência", func() error {
			return db.Model(&model.Mensalidade{}).Where("status = ?", model.MensalidadeAtrasada).Count(&stats.Inadimplencia).Error
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			r.logger.Error("falha ao calcular indicador do painel", zap.String("indicador", step.what), zap.Error(err))
			span.SetStatus(codes.Error, "database error")
			return nil, fmt.Errorf("falha ao calcular %s: %w", step.what, err)
		}
	}

	span.SetStatus(codes.Ok, "")
	return stats, nil
}

// MatriculasPorCurso conta matrículas ativas agrupadas por curso
func (r *DashboardRepository) MatriculasPorCurso(ctx context.Context) ([]model.MatriculasPorCurso, error) {
	ctx, span := r.tracer.Start(ctx, "DashboardRepository.MatriculasPorCurso",
		trace.WithAttributes(attribute.String("db.operation", "aggregate")),
	)
	defer span.End()

	rows := make([]model.MatriculasPorCurso, 0)
	if r.db == nil {
		return rows, nil
	}

	err := r.db.WithContext(ctx).
		Table("matriculas").
		Select("cursos.nome AS curso_nome, COUNT(matriculas.id) AS total_matriculas").
		Joins("INNER JOIN cursos ON matriculas.curso_id = cursos.id").
		Where("matriculas.status = ?", model.MatriculaAtiva).
		Group("cursos.id, cursos.nome").
		Order("cursos.nome").
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("falha ao agrupar matrículas por curso", zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao agrupar matrículas por curso: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return rows, nil
}
