package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/diillson/dancart-api/internal/observability"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware implementa recuperação de pânicos
type RecoveryMiddleware struct {
	logger *zap.Logger
}

// NewRecoveryMiddleware cria um novo middleware de recuperação
func NewRecoveryMiddleware(logger *zap.Logger) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		logger: logger,
	}
}

// Recovery recupera de pânicos com logs detalhados e reporta ao Sentry
func (m *RecoveryMiddleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()

				m.logger.Error("recuperado de pânico",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("request_id", logging.RequestID(c.Request.Context())),
					zap.ByteString("stack", stack),
				)
				observability.CapturePanic(err)

				apiErr := apperrors.InternalServer("Erro interno do servidor", nil)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apiErr})
			}
		}()

		c.Next()
	}
}
