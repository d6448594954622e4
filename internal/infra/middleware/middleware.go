package middleware

import (
	"net/http"
	"time"

	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/infra/metrics"
	"github.com/diillson/dancart-api/pkg/config"
	"github.com/diillson/dancart-api/pkg/logging"
	"github.com/diillson/dancart-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader é o cabeçalho de correlação de requisições
const RequestIDHeader = "X-Request-ID"

// Middleware contém todos os middlewares da aplicação
type Middleware struct {
	logger              *zap.Logger
	identityMiddleware  *IdentityMiddleware
	recoveryMiddleware  *RecoveryMiddleware
	securityMiddleware  *SecurityMiddleware
	tracingMiddleware   *TracingMiddleware
	metricsMiddleware   *MetricsMiddleware
	rateLimitMiddleware *RateLimitMiddleware
}

// NewMiddleware cria um novo conjunto de middlewares.
// Sem limitador ou com rate limit desligado, o limite global por IP fica inativo.
func NewMiddleware(cfg *config.Config, authenticator auth.Authenticator, limiter ratelimit.Limiter, apiMetrics *metrics.APIMetrics, logger *zap.Logger) *Middleware {
	m := &Middleware{
		logger:             logger,
		identityMiddleware: NewIdentityMiddleware(authenticator, logger),
		recoveryMiddleware: NewRecoveryMiddleware(logger),
		securityMiddleware: NewSecurityMiddleware(cfg.CORS.AllowedOrigins, logger),
		tracingMiddleware:  NewTracingMiddleware(cfg.Tracing.ServiceName, logger),
	}

	if apiMetrics != nil {
		m.metricsMiddleware = NewMetricsMiddleware(apiMetrics, logger)
	}

	if limiter != nil && cfg.RateLimit.Enabled {
		m.rateLimitMiddleware = NewRateLimitMiddleware(limiter, cfg.RateLimit.GlobalLimit, cfg.RateLimit.GlobalPeriod, apiMetrics, logger)
	} else {
		logger.Info("Rate limit global por IP desativado")
	}

	return m
}

func noop(c *gin.Context) {
	c.Next()
}

// Metrics retorna o middleware de métricas
func (m *Middleware) Metrics() gin.HandlerFunc {
	if m.metricsMiddleware != nil {
		return m.metricsMiddleware.Middleware()
	}
	return noop
}

// RateLimit retorna o limite global por IP
func (m *Middleware) RateLimit() gin.HandlerFunc {
	if m.rateLimitMiddleware != nil {
		return m.rateLimitMiddleware.IPRateLimit()
	}
	return noop
}

// Identify resolve o usuário da sessão em cada requisição
func (m *Middleware) Identify() gin.HandlerFunc {
	return m.identityMiddleware.Identify()
}

// RequireAdmin restringe uma rota HTTP a administradores
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return m.identityMiddleware.RequireTier(auth.Admin)
}

// Recovery middleware para recuperação de pânicos
func (m *Middleware) Recovery() gin.HandlerFunc {
	return m.recoveryMiddleware.Recovery()
}

// IgnoreFavicon é um middleware que ignora requisições para /favicon.ico
func (m *Middleware) IgnoreFavicon() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/favicon.ico" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID propaga ou gera o identificador de correlação da requisição
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger middleware para logging de requisições
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("path", path),
			zap.String("method", c.Request.Method),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.String("request_id", logging.RequestID(c.Request.Context())),
		}
		if procedure := c.Param("procedure"); procedure != "" {
			fields = append(fields, zap.String("procedure", procedure))
		}
		if user := CurrentUser(c); user != nil {
			fields = append(fields, zap.String("user", user.OpenID))
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			m.logger.Error("request completed", fields...)
			return
		}
		m.logger.Info("request completed", fields...)
	}
}

// SecurityHeaders middleware para adicionar cabeçalhos de segurança
func (m *Middleware) SecurityHeaders() gin.HandlerFunc {
	return m.securityMiddleware.Headers()
}

// CORS middleware para configurar CORS
func (m *Middleware) CORS() gin.HandlerFunc {
	return m.securityMiddleware.CORS()
}

// Tracing retorna o middleware de tracing
func (m *Middleware) Tracing() gin.HandlerFunc {
	return m.tracingMiddleware.Middleware()
}
