package http

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Estados reportados por dependência
const (
	StatusUp            = "UP"
	StatusDown          = "DOWN"
	StatusNotConfigured = "NOT_CONFIGURED"
)

// HealthChecker implementa endpoints de health check
type HealthChecker struct {
	environment  string
	version      string
	logger       *zap.Logger
	dependencies []Dependency
}

// DatabaseChecker define a interface para verificar o banco de dados
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// CacheChecker define a interface para verificar o cache
type CacheChecker interface {
	Ping(ctx context.Context) error
}

// Dependency representa um componente do qual o sistema depende.
// Check nil indica componente não configurado.
type Dependency struct {
	Name     string
	Check    func(context.Context) error
	Critical bool // Se true, falha deste componente faz o health check falhar
}

// NewHealthChecker cria um novo health checker.
// db nil significa modo degradado sem banco: o serviço continua pronto.
func NewHealthChecker(db DatabaseChecker, cache CacheChecker, environment, version string, logger *zap.Logger) *HealthChecker {
	hc := &HealthChecker{
		environment: environment,
		version:     version,
		logger:      logger,
	}

	database := Dependency{Name: "database", Critical: true}
	if db != nil {
		database.Check = db.Ping
	}
	hc.dependencies = append(hc.dependencies, database)

	if cache != nil {
		hc.dependencies = append(hc.dependencies, Dependency{
			Name:     "cache",
			Check:    cache.Ping,
			Critical: false,
		})
	}

	return hc
}

// LivenessCheck verifica se o aplicativo está vivo (execução básica)
func (h *HealthChecker) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": StatusUp,
		"time":   time.Now().UTC(),
	})
}

// ReadinessCheck verifica se o aplicativo está pronto para receber tráfego
func (h *HealthChecker) ReadinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx, false)

	status := http.StatusOK
	overall := StatusUp
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = StatusDown
	}

	c.JSON(status, gin.H{
		"status": overall,
		"time":   time.Now().UTC(),
		"checks": checks,
	})
}

// DetailedHealth fornece informações detalhadas sobre o sistema
func (h *HealthChecker) DetailedHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	checks, healthy := h.runChecks(ctx, true)

	status := http.StatusOK
	overall := StatusUp
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = StatusDown
	}

	c.JSON(status, gin.H{
		"status":      overall,
		"time":        time.Now().UTC(),
		"version":     h.version,
		"environment": h.environment,
		"checks":      checks,
		"system":      getSystemInfo(),
	})
}

// runChecks verifica cada dependência em paralelo
func (h *HealthChecker) runChecks(ctx context.Context, withErrors bool) (map[string]gin.H, bool) {
	checks := make(map[string]gin.H, len(h.dependencies))
	healthy := true

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, dep := range h.dependencies {
		if dep.Check == nil {
			checks[dep.Name] = gin.H{"status": StatusNotConfigured, "critical": dep.Critical}
			continue
		}

		wg.Add(1)
		go func(d Dependency) {
			defer wg.Done()

			start := time.Now()
			err := d.Check(ctx)
			result := gin.H{
				"status":   StatusUp,
				"time":     time.Since(start).String(),
				"critical": d.Critical,
			}
			if err != nil {
				result["status"] = StatusDown
				if withErrors {
					result["error"] = err.Error()
				}
				h.logger.Error("health check falhou",
					zap.String("dependency", d.Name),
					zap.Error(err))
			}

			mu.Lock()
			defer mu.Unlock()
			checks[d.Name] = result
			if err != nil && d.Critical {
				healthy = false
			}
		}(dep)
	}
	wg.Wait()

	return checks, healthy
}

// getSystemInfo retorna informações sobre o sistema
func getSystemInfo() gin.H {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return gin.H{
		"go_version":    runtime.Version(),
		"num_cpu":       runtime.NumCPU(),
		"num_goroutine": runtime.NumGoroutine(),
		"memory": gin.H{
			"alloc_mb": float64(m.Alloc) / 1024 / 1024,
			"sys_mb":   float64(m.Sys) / 1024 / 1024,
			"num_gc":   m.NumGC,
		},
	}
}
