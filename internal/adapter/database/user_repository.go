package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository implementa repository.UserRepository
type UserRepository struct {
	db     *gorm.DB
	logger *zap.Logger
	tracer trace.Tracer
}

// NewUserRepository cria o repositório de usuários
func NewUserRepository(db *gorm.DB, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("dancart.repository.users"),
	}
}

// GetByOpenID busca o usuário pela identidade externa
func (r *UserRepository) GetByOpenID(ctx context.Context, openID string) (*model.User, error) {
	ctx, span := r.tracer.Start(ctx, "UserRepository.GetByOpenID",
		trace.WithAttributes(
			attribute.String("db.operation", "select"),
			attribute.String("db.table", "users"),
		),
	)
	defer span.End()

	if r.db == nil {
		return nil, repository.ErrNotFound
	}

	var user model.User
	if err := r.db.WithContext(ctx).Where("open_id = ?", openID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetAttributes(attribute.Bool("db.found", false))
			return nil, repository.ErrNotFound
		}
		r.logger.Error("falha ao buscar usuário", zap.String("openId", openID), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return &user, nil
}

// Upsert insere o usuário ou atualiza apenas os campos informados.
// Sem nenhum campo informado, atualiza lastSignedIn.
func (r *UserRepository) Upsert(ctx context.Context, in model.UpsertUser) error {
	ctx, span := r.tracer.Start(ctx, "UserRepository.Upsert",
		trace.WithAttributes(
			attribute.String("db.operation", "upsert"),
			attribute.String("db.table", "users"),
		),
	)
	defer span.End()

	if in.OpenID == "" {
		return errors.New("openId é obrigatório para upsert")
	}
	if r.db == nil {
		span.SetStatus(codes.Error, "storage unavailable")
		return repository.ErrStorageUnavailable
	}

	now := time.Now().UTC()
	user := model.User{
		OpenID:       in.OpenID,
		Name:         in.Name,
		Email:        in.Email,
		LoginMethod:  in.LoginMethod,
		Role:         model.RoleUser,
		LastSignedIn: now,
	}

	updates := make([]string, 0, 5)
	if in.Name != nil {
		updates = append(updates, "name")
	}
	if in.Email != nil {
		updates = append(updates, "email")
	}
	if in.LoginMethod != nil {
		updates = append(updates, "login_method")
	}
	if in.Role != nil {
		user.Role = *in.Role
		updates = append(updates, "role")
	}
	if in.LastSignedIn != nil {
		user.LastSignedIn = *in.LastSignedIn
	}
	if in.LastSignedIn != nil || len(updates) == 0 {
		updates = append(updates, "last_signed_in")
	}
	updates = append(updates, "updated_at")

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&user).Error
	if err != nil {
		r.logger.Error("falha ao gravar usuário", zap.String("openId", in.OpenID), zap.Error(err))
		span.SetStatus(codes.Error, "database error")
		return fmt.Errorf("falha ao gravar usuário: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
