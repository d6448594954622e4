package observability

import (
	"fmt"
	"time"

	"github.com/diillson/dancart-api/pkg/config"
	"github.com/getsentry/sentry-go"
)

// InitSentry inicializa o cliente Sentry. Sem DSN não faz nada.
// A função devolvida descarrega os eventos pendentes no encerramento.
func InitSentry(cfg config.SentryConfig, environment string) (func(), error) {
	if cfg.DSN == "" {
		return func() {}, nil
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: environment,
		Release:     cfg.Release,
	}); err != nil {
		return func() {}, err
	}
	return func() { sentry.Flush(2 * time.Second) }, nil
}

// CaptureErr envia o erro ao Sentry quando houver cliente configurado
func CaptureErr(err error) {
	if err != nil {
		sentry.CaptureException(err)
	}
}

// CapturePanic registra um pânico recuperado
func CapturePanic(recovered interface{}) {
	if recovered == nil {
		return
	}
	if err, ok := recovered.(error); ok {
		sentry.CaptureException(fmt.Errorf("pânico: %w", err))
		return
	}
	sentry.CaptureException(fmt.Errorf("pânico: %v", recovered))
}
