package noticia

import (
	"context"
	"errors"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"go.uber.org/zap"
)

// Service publica notícias do site
type Service struct {
	repo    repository.NoticiaRepository
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService cria o serviço de notícias
func NewService(repo repository.NoticiaRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:    repo,
		logger:  logger,
		nowFunc: time.Now,
	}
}

func (s *Service) hoje() model.Date {
	return model.DateOf(s.nowFunc().UTC())
}

// Create grava a notícia; se já nasce publicada, a data de publicação é hoje
func (s *Service) Create(ctx context.Context, in model.NoticiaInput) (*model.Noticia, error) {
	n := in.Entity(s.hoje())
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Info("Notícia criada",
		zap.Int64("noticia_id", n.ID),
		zap.Bool("publicada", n.Publicada))
	return n, nil
}

// Update aplica o patch. Publicar sem informar a data usa a data de hoje.
func (s *Service) Update(ctx context.Context, id int64, patch model.NoticiaPatch) error {
	changes := model.Changes(patch)
	if patch.Publicada != nil && *patch.Publicada && patch.DataPublicacao == nil {
		changes["data_publicacao"] = s.hoje()
	}
	return s.repo.Update(ctx, id, changes)
}

// Get busca a notícia. Fora do painel, rascunhos não existem e cada leitura conta uma visualização.
func (s *Service) Get(ctx context.Context, id int64, admin bool) (*model.Noticia, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Notícia", err)
		}
		return nil, err
	}

	if admin {
		return n, nil
	}
	if !n.Publicada {
		return nil, apperrors.NotFound("Notícia", repository.ErrNotFound)
	}

	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("Falha ao contar visualização",
			zap.Int64("noticia_id", id),
			zap.Error(err))
	} else {
		n.Visualizacoes++
	}
	return n, nil
}

// Publicadas lista as notícias visíveis ao público
func (s *Service) Publicadas(ctx context.Context) ([]model.Noticia, error) {
	return s.repo.ListPublicadas(ctx)
}
