package middleware

import (
	"strconv"
	"time"

	"github.com/diillson/dancart-api/internal/infra/metrics"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimitMiddleware gerencia rate limiting
type RateLimitMiddleware struct {
	limiter ratelimit.Limiter
	limit   int
	period  time.Duration
	logger  *zap.Logger
	metrics *metrics.APIMetrics
}

// NewRateLimitMiddleware cria um novo middleware de rate limiting por IP
func NewRateLimitMiddleware(limiter ratelimit.Limiter, limit int, period time.Duration, metrics *metrics.APIMetrics, logger *zap.Logger) *RateLimitMiddleware {
	if limit <= 0 {
		limit = 300
	}
	if period <= 0 {
		period = time.Minute
	}
	return &RateLimitMiddleware{
		limiter: limiter,
		limit:   limit,
		period:  period,
		logger:  logger,
		metrics: metrics,
	}
}

// IPRateLimit limita requisições por IP
func (m *RateLimitMiddleware) IPRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		config := ratelimit.LimitConfig{
			Key:         "ip:" + clientIP,
			Limit:       m.limit,
			Period:      m.period,
			BurstFactor: 1.5, // permite até 50% mais em picos
		}

		allowed, limit, remaining, resetAfter, err := m.limiter.Allow(c.Request.Context(), config)
		if err != nil {
			m.logger.Error("erro ao verificar rate limit", zap.Error(err))
			c.Next() // Em caso de erro, permite a requisição
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetAfter).Unix(), 10))

		if !allowed {
			path := c.FullPath()
			if path == "" {
				path = c.Request.URL.Path
			}
			if m.metrics != nil {
				m.metrics.RateLimitExceeded(path, "ip_limit")
			}
			m.logger.Warn("limite por IP excedido",
				zap.String("ip", clientIP),
				zap.String("path", path))

			retry := int(resetAfter.Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			apiErr := apperrors.TooManyRequests("Muitas requisições. Tente novamente em instantes.")
			c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
			return
		}

		c.Next()
	}
}
