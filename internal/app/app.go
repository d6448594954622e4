package app

import (
	"context"
	"errors"
	"fmt"
	net2 "net/http"
	"time"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/adapter/http"
	"github.com/diillson/dancart-api/internal/adapter/rpc"
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/service"
	"github.com/diillson/dancart-api/internal/infra/metrics"
	"github.com/diillson/dancart-api/internal/infra/middleware"
	"github.com/diillson/dancart-api/pkg/cache"
	"github.com/diillson/dancart-api/pkg/config"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/ratelimit"
	"github.com/diillson/dancart-api/pkg/security"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Version é a versão reportada pelo health check detalhado
var Version = "dev"

type App struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *database.Database
	Redis          *redis.Client
	Cache          cache.Cache
	Limiter        ratelimit.Limiter
	Services       *service.Services
	Authenticator  auth.Authenticator
	Sessions       *auth.SessionAuthenticator
	RPC            *rpc.Router
	Middleware     *middleware.Middleware
	Health         *http.HealthChecker
	Export         *http.ExportHandler
	Registry       *prometheus.Registry
	APIMetrics     *metrics.APIMetrics
	MetricsHandler *middleware.MetricsHandler
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas.
// Sem DSN configurado a aplicação sobe em modo degradado.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Logger: logger}

	// Métricas em registrador próprio
	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a.APIMetrics = metrics.NewAPIMetrics(a.Registry)
	a.MetricsHandler = middleware.NewMetricsHandler(a.Registry, logger)

	// Banco de dados
	var gormDB *gorm.DB
	if cfg.StorageConfigured() {
		db, err := database.NewDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		a.DB = db
		gormDB = db.DB()
	} else {
		logger.Warn("Banco de dados não configurado: leituras vazias e escritas recusadas")
	}

	a.setupCache(ctx)

	keys, err := security.NewKeyManager(security.GetJWTSecret(cfg), logger)
	if err != nil {
		if !errors.Is(err, security.ErrSecretTooShort) {
			return nil, fmt.Errorf("erro ao inicializar chaves JWT: %w", err)
		}
		logger.Warn("Segredo JWT ausente ou curto: sessões desabilitadas")
		keys = nil
	}

	a.Services = service.NewServices(gormDB, cfg.Auth.OwnerOpenID, a.APIMetrics, logger)

	a.Sessions = auth.NewSessionAuthenticator(keys, a.Services.Users, a.Cache, auth.SessionOptions{
		CookieName:      cfg.Auth.CookieName,
		SessionDuration: cfg.Auth.SessionDuration,
		UserCacheTTL:    cfg.Auth.UserCacheTTL,
	}, logger)
	a.Authenticator = auth.Select(cfg.Environment, a.Sessions, a.Services.Users, cfg.Auth.DevAdminOpenID, logger)

	rpcOpts := rpc.Options{
		PublicLimit:  cfg.RateLimit.Limit,
		PublicPeriod: cfg.RateLimit.Period,
		Metrics:      a.APIMetrics,
	}
	if cfg.RateLimit.Enabled {
		rpcOpts.Limiter = a.Limiter
	}
	a.RPC = rpc.NewAppRouter(rpcServices(a.Services, a.Authenticator, a.Sessions), rpcOpts, logger)

	a.Middleware = middleware.NewMiddleware(cfg, a.Authenticator, a.Limiter, a.APIMetrics, logger)

	var dbChecker http.DatabaseChecker
	if a.DB != nil {
		dbChecker = a.DB
	}
	a.Health = http.NewHealthChecker(dbChecker, a.Cache, cfg.Environment, Version, logger)

	a.Export = http.NewExportHandler(a.Services.Repos.Matriculas, a.Services.Repos.Mensalidades, logger)
	a.Export.SetMetrics(a.APIMetrics)

	return a, nil
}

// setupCache escolhe cache e limitador: Redis quando configurado e acessível, memória caso contrário
func (a *App) setupCache(ctx context.Context) {
	cfg := a.Config

	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		client, err := cache.NewRedisClient(ctx, cfg.Cache.Redis, a.Logger)
		if err != nil {
			a.Logger.Error("Redis indisponível, usando cache e rate limit em memória", zap.Error(err))
		} else {
			a.Redis = client
		}
	}

	switch {
	case !cfg.Cache.Enabled:
		a.Cache = &cache.NoOpCache{}
	case a.Redis != nil:
		a.Cache = cache.NewRedisCache(a.Redis, a.Logger)
	default:
		ttl := cfg.Cache.TTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		a.Cache = cache.NewMemoryCache(ttl, 2*ttl, a.APIMetrics, a.Logger)
	}

	if a.Redis != nil {
		a.Limiter = ratelimit.NewRedisLimiter(a.Redis, a.Logger)
	} else {
		a.Limiter = ratelimit.NewMemoryLimiter()
	}
}

func rpcServices(s *service.Services, authn auth.Authenticator, sessions rpc.SessionCloser) rpc.Services {
	return rpc.Services{
		Authenticator: authn,
		Sessions:      sessions,
		Bailarinos:    s.Repos.Bailarinos,
		Cursos:        s.Repos.Cursos,
		Matriculas:    s.Repos.Matriculas,
		Mensalidades:  s.Repos.Mensalidades,
		Agendamentos:  s.Repos.Agendamentos,
		Depoimentos:   s.Repos.Depoimentos,
		Eventos:       s.Repos.Eventos,
		Inscricoes:    s.Repos.Inscricoes,
		Noticias:      s.Repos.Noticias,
		Matricula:     s.Matricula,
		Evento:        s.Evento,
		Noticia:       s.Noticia,
		Dashboard:     s.Dashboard,
		Portal:        s.Portal,
		Cobranca:      s.Cobranca,
	}
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.RequestID())
	router.Use(a.Middleware.Tracing())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.Metrics())
	router.Use(a.Middleware.IgnoreFavicon())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())

	if a.Config.Metrics.Enabled {
		a.MetricsHandler.RegisterEndpoint(router, a.Config.Metrics.PrometheusPath)
	}

	router.GET("/health", a.Health.DetailedHealth)
	router.GET("/health/liveness", a.Health.LivenessCheck)
	router.GET("/health/readiness", a.Health.ReadinessCheck)

	api := router.Group("/api")
	api.Use(a.Middleware.RateLimit(), a.Middleware.Identify())

	a.RPC.Mount(api.Group("/trpc"))

	export := api.Group("/export")
	export.Use(a.Middleware.RequireAdmin())
	{
		export.GET("/mensalidades.xlsx", a.Export.Mensalidades)
		export.GET("/matriculas.xlsx", a.Export.Matriculas)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(net2.StatusNotFound, gin.H{"error": apperrors.New(apperrors.CodeNotFound, "Rota não encontrada", nil)})
	})
}

// Close libera conexões abertas pela aplicação
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("Falha ao fechar conexão com Redis", zap.Error(err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Warn("Falha ao fechar banco de dados", zap.Error(err))
		}
	}
}
