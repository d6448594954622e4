package ratelimit

import (
	"context"
	"errors"
	"time"
)

// LimitConfig configura o comportamento do limitador
type LimitConfig struct {
	Key         string        // Chave única para identificar o limite
	Limit       int           // Número máximo de requisições
	Period      time.Duration // Período de tempo para o limite
	BurstFactor float64       // Fator para permitir rajadas (1.0 = sem rajada)
}

// Limiter decide se uma requisição cabe na janela atual.
// Retorna: permitido, limite, restante, tempo de reset, erro
type Limiter interface {
	Allow(ctx context.Context, config LimitConfig) (bool, int, int, time.Duration, error)
}

var (
	errInvalidLimit  = errors.New("limite deve ser maior que zero")
	errInvalidPeriod = errors.New("período deve ser maior que zero")
)

func normalize(config LimitConfig) (LimitConfig, error) {
	if config.Limit <= 0 {
		return config, errInvalidLimit
	}
	if config.Period <= 0 {
		return config, errInvalidPeriod
	}
	if config.BurstFactor <= 0 {
		config.BurstFactor = 1.0
	}
	return config, nil
}

// windowReset calcula o fim da janela fixa que contém now
func windowReset(now time.Time, period time.Duration) (int64, time.Duration) {
	periodSeconds := int64(period.Seconds())
	if periodSeconds <= 0 {
		periodSeconds = 1
	}
	unix := now.Unix()
	expireAt := unix - (unix % periodSeconds) + periodSeconds
	return expireAt, time.Duration(expireAt-unix) * time.Second
}
