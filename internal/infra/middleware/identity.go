package middleware

import (
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextUserKey é a chave do usuário resolvido no contexto do gin
const ContextUserKey = "user"

// IdentityMiddleware resolve a identidade de cada requisição
type IdentityMiddleware struct {
	authenticator auth.Authenticator
	logger        *zap.Logger
}

// NewIdentityMiddleware cria um novo middleware de identidade
func NewIdentityMiddleware(authenticator auth.Authenticator, logger *zap.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{
		authenticator: authenticator,
		logger:        logger,
	}
}

// Identify resolve o usuário da sessão sem nunca rejeitar a requisição.
// Falhas de autenticação equivalem a um chamador anônimo.
func (m *IdentityMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.authenticator.Authenticate(c.Request.Context(), c.Request)
		if err != nil {
			m.logger.Debug("requisição sem identidade válida",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			user = nil
		}

		if user != nil {
			c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), user))
			c.Set(ContextUserKey, user)
		}

		c.Next()
	}
}

// RequireTier bloqueia rotas HTTP comuns que exigem um nível de acesso
func (m *IdentityMiddleware) RequireTier(tier auth.Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.Authorize(tier, auth.UserFromContext(c.Request.Context())); err != nil {
			apiErr := apperrors.FromError(err)
			c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
			return
		}
		c.Next()
	}
}

// CurrentUser devolve o usuário resolvido pelo Identify, ou nil
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return auth.UserFromContext(c.Request.Context())
}
