package auth

import (
	"context"
	"strings"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"go.uber.org/zap"
)

// UserService registra logins e aplica a promoção do dono do site a admin
type UserService struct {
	repo        repository.UserRepository
	ownerOpenID string
	logger      *zap.Logger
}

// NewUserService cria o serviço de usuários
func NewUserService(repo repository.UserRepository, ownerOpenID string, logger *zap.Logger) *UserService {
	return &UserService{
		repo:        repo,
		ownerOpenID: strings.TrimSpace(ownerOpenID),
		logger:      logger,
	}
}

// Upsert grava o usuário pelo openId. Sem papel informado, o dono recebe admin.
func (s *UserService) Upsert(ctx context.Context, in model.UpsertUser) error {
	if in.Role == nil && s.ownerOpenID != "" && in.OpenID == s.ownerOpenID {
		admin := model.RoleAdmin
		in.Role = &admin
	}

	if err := s.repo.Upsert(ctx, in); err != nil {
		s.logger.Error("Falha ao gravar usuário", zap.String("open_id", in.OpenID), zap.Error(err))
		return err
	}
	return nil
}

// Get busca o usuário pelo openId
func (s *UserService) Get(ctx context.Context, openID string) (*model.User, error) {
	return s.repo.GetByOpenID(ctx, openID)
}
