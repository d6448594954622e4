package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Ambientes suportados
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Cache       CacheConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	Metrics     MetricsConfig
	Logging     LoggingConfig
	Tracing     TracingConfig
	Sentry      SentryConfig
	CORS        CORSConfig
}

// ServerConfig contém configurações do servidor HTTP
type ServerConfig struct {
	Port           int
	Host           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	TLS            bool
	CertFile       string
	KeyFile        string
	BaseURL        string
	Domains        []string
}

// DatabaseConfig contém configurações do banco de dados.
// DSN vazio significa que nenhum banco foi configurado.
type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
	SlowThreshold   time.Duration
	MigrationDir    string
	SkipMigrations  bool
}

// RedisOptions contém configurações específicas para Redis
type RedisOptions struct {
	Address      string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
}

// CacheConfig contém configurações do cache
type CacheConfig struct {
	Enabled bool
	Type    string // redis, memory
	TTL     time.Duration
	Redis   RedisOptions
}

// AuthConfig contém configurações de autenticação
type AuthConfig struct {
	JWTSecret       string
	CookieName      string
	SessionDuration time.Duration
	OwnerOpenID     string
	OAuthServerURL  string
	DevAdminOpenID  string
	UserCacheTTL    time.Duration
}

// RateLimitConfig limita os formulários públicos (agendamento, depoimento, inscrição)
type RateLimitConfig struct {
	Enabled      bool
	Limit        int
	Period       time.Duration
	GlobalLimit  int
	GlobalPeriod time.Duration
}

// MetricsConfig contém configurações de métricas
type MetricsConfig struct {
	Enabled        bool
	PrometheusPath string
}

// LoggingConfig contém configurações de logging
type LoggingConfig struct {
	Level      string
	Production bool
}

// TracingConfig contém configurações de rastreamento
type TracingConfig struct {
	Enabled       bool
	Endpoint      string
	ServiceName   string
	SamplingRatio float64
}

// SentryConfig contém configurações do Sentry
type SentryConfig struct {
	DSN     string
	Release string
}

// CORSConfig contém as origens aceitas pelo site
type CORSConfig struct {
	AllowedOrigins []string
}

// IsDevelopment indica se o processo roda em modo desenvolvimento
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// StorageConfigured indica se existe um banco de dados configurado
func (c *Config) StorageConfigured() bool {
	return strings.TrimSpace(c.Database.DSN) != ""
}

// LoadConfig carrega a configuração de diversas fontes (.env, arquivo, env, defaults)
func LoadConfig(configPath string) (*Config, error) {
	// .env é opcional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("erro ao ler arquivo .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dancart")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %w", err)
		}
	}

	// Variáveis de ambiente com prefixo DANCART_ (ex.: DANCART_DATABASE_DSN)
	v.SetEnvPrefix("DANCART")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("erro ao mapear configuração: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults define valores padrão para a configuração
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvProduction)

	// Servidor
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.readTimeout", "5s")
	v.SetDefault("server.writeTimeout", "10s")
	v.SetDefault("server.idleTimeout", "30s")
	v.SetDefault("server.maxHeaderBytes", 1<<20)
	v.SetDefault("server.tls", false)
	v.SetDefault("server.certFile", "")
	v.SetDefault("server.keyFile", "")

	// Banco de dados
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.connMaxLifetime", "1h")
	v.SetDefault("database.logLevel", "warn")
	v.SetDefault("database.slowThreshold", "200ms")
	v.SetDefault("database.migrationDir", "./migrations")
	v.SetDefault("database.skipMigrations", false)

	// Cache
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.poolSize", 10)
	v.SetDefault("cache.redis.minIdleConns", 2)
	v.SetDefault("cache.redis.maxRetries", 3)
	v.SetDefault("cache.redis.readTimeout", "3s")
	v.SetDefault("cache.redis.writeTimeout", "3s")
	v.SetDefault("cache.redis.dialTimeout", "5s")

	// Autenticação
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.cookieName", "app_session_id")
	v.SetDefault("auth.sessionDuration", "8760h") // 1 ano
	v.SetDefault("auth.ownerOpenId", "")
	v.SetDefault("auth.oAuthServerUrl", "")
	v.SetDefault("auth.devAdminOpenId", "admin-dev")
	v.SetDefault("auth.userCacheTTL", "1m")

	// Rate limit
	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.limit", 10)
	v.SetDefault("rateLimit.period", "1m")
	v.SetDefault("rateLimit.globalLimit", 300)
	v.SetDefault("rateLimit.globalPeriod", "1m")

	// Métricas
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.prometheusPath", "/metrics")

	// Logging
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.production", true)

	// Tracing
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.samplingRatio", 0.1)
	v.SetDefault("tracing.serviceName", "dancart-api")

	// Sentry
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.release", "")

	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000"})
}

// validateConfig valida a configuração
func validateConfig(config *Config) error {
	validEnvs := map[string]bool{EnvDevelopment: true, EnvProduction: true, EnvTest: true}
	if !validEnvs[config.Environment] {
		return fmt.Errorf("ambiente inválido: %s", config.Environment)
	}

	if len(config.Auth.JWTSecret) < 32 {
		if config.Environment == EnvProduction {
			return fmt.Errorf("auth.jwtSecret deve ter pelo menos 32 caracteres em produção")
		}
		fmt.Println("AVISO: auth.jwtSecret não definido ou muito curto. Sessões não serão aceitas.")
	}

	if config.Server.TLS {
		if config.Server.CertFile == "" && len(config.Server.Domains) == 0 {
			return fmt.Errorf("TLS habilitado, mas nenhum certificado ou domínio foi definido")
		}
	}

	if config.StorageConfigured() {
		validDrivers := map[string]bool{"sqlite": true, "mysql": true, "postgres": true}
		if !validDrivers[config.Database.Driver] {
			return fmt.Errorf("driver de banco de dados inválido: %s", config.Database.Driver)
		}
	}

	if config.Cache.Enabled {
		validTypes := map[string]bool{"memory": true, "redis": true}
		if !validTypes[config.Cache.Type] {
			return fmt.Errorf("tipo de cache inválido: %s", config.Cache.Type)
		}

		if config.Cache.Type == "redis" && config.Cache.Redis.Address == "" {
			return fmt.Errorf("tipo de cache redis requer um endereço")
		}
	}

	if config.RateLimit.Enabled && (config.RateLimit.Limit <= 0 || config.RateLimit.Period <= 0) {
		return fmt.Errorf("rate limit habilitado com limite ou período inválido")
	}

	return nil
}
