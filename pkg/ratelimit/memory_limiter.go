package ratelimit

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryLimiter aplica janela fixa em memória, por processo.
// Usado quando o Redis não está configurado.
type MemoryLimiter struct {
	counters *cache.Cache
	now      func() time.Time
}

// NewMemoryLimiter cria um limitador em memória
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		counters: cache.New(time.Minute, 5*time.Minute),
		now:      time.Now,
	}
}

// Allow conta a requisição na janela corrente de config.Key
func (m *MemoryLimiter) Allow(ctx context.Context, config LimitConfig) (bool, int, int, time.Duration, error) {
	config, err := normalize(config)
	if err != nil {
		return true, 0, 0, 0, err
	}

	expireAt, resetAfter := windowReset(m.now(), config.Period)
	key := config.Key + ":" + time.Unix(expireAt, 0).UTC().Format(time.RFC3339)

	count := 1
	if err := m.counters.Add(key, 1, resetAfter); err != nil {
		// já existe contador para a janela
		count, err = m.counters.IncrementInt(key, 1)
		if err != nil {
			return true, config.Limit, config.Limit, resetAfter, err
		}
	}

	remaining := config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	burstLimit := int(float64(config.Limit) * config.BurstFactor)

	return count <= burstLimit, config.Limit, remaining, resetAfter, nil
}
