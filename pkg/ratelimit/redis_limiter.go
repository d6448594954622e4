package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var fixedWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local limit = tonumber(ARGV[1])
	local expireAt = tonumber(ARGV[2])
	local ttl = expireAt - tonumber(ARGV[3])

	local count = redis.call('INCR', key)
	if count == 1 then
		redis.call('EXPIREAT', key, expireAt)
	end

	local remaining = limit - count
	return {count, remaining, ttl}
`)

// RedisLimiter implementa rate limiting usando Redis, compartilhado entre instâncias
type RedisLimiter struct {
	client *redis.Client
	logger *zap.Logger
	tracer trace.Tracer
}

// NewRedisLimiter cria um novo limitador baseado em Redis
func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		logger: logger,
		tracer: otel.GetTracerProvider().Tracer("dancart.ratelimit"),
	}
}

// Allow verifica se a requisição é permitida dentro do limite de taxa.
// Em falha do Redis a requisição é liberada e o erro devolvido.
func (r *RedisLimiter) Allow(ctx context.Context, config LimitConfig) (bool, int, int, time.Duration, error) {
	ctx, span := r.tracer.Start(ctx, "RedisLimiter.Allow",
		trace.WithAttributes(
			attribute.String("ratelimit.key", config.Key),
			attribute.Int("ratelimit.limit", config.Limit),
			attribute.Int64("ratelimit.period_ms", config.Period.Milliseconds()),
		),
	)
	defer span.End()

	config, err := normalize(config)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return true, 0, 0, 0, err
	}

	key := fmt.Sprintf("dancart:ratelimit:%s", config.Key)
	now := time.Now()
	expireAt, resetAfter := windowReset(now, config.Period)

	result, err := fixedWindowScript.Run(ctx, r.client, []string{key}, config.Limit, expireAt, now.Unix()).Result()
	if err != nil {
		r.logger.Error("erro ao executar script de rate limit", zap.Error(err))
		span.SetStatus(codes.Error, "redis script error")
		span.SetAttributes(attribute.String("error.message", err.Error()))
		return true, config.Limit, config.Limit, resetAfter, err
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		r.logger.Error("resultado inesperado do script de rate limit", zap.Any("result", result))
		span.SetStatus(codes.Error, "unexpected result")
		return true, config.Limit, config.Limit, resetAfter, errors.New("resultado inválido do Redis")
	}

	count, _ := strconv.Atoi(fmt.Sprintf("%v", values[0]))
	remaining, _ := strconv.Atoi(fmt.Sprintf("%v", values[1]))
	ttl, _ := strconv.ParseInt(fmt.Sprintf("%v", values[2]), 10, 64)

	burstLimit := int(float64(config.Limit) * config.BurstFactor)
	allowed := count <= burstLimit
	if remaining < 0 {
		remaining = 0
	}

	span.SetAttributes(
		attribute.Int("ratelimit.count", count),
		attribute.Int("ratelimit.remaining", remaining),
		attribute.Bool("ratelimit.allowed", allowed),
	)
	if !allowed {
		span.SetStatus(codes.Error, "rate limit exceeded")
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return allowed, config.Limit, remaining, time.Duration(ttl) * time.Second, nil
}
