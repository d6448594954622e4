package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/diillson/dancart-api/pkg/config"
	"gopkg.in/yaml.v3"
)

func main() {
	var (
		outputPath string
		force      bool
	)

	flag.StringVar(&outputPath, "output", "config.yaml", "Caminho para o arquivo de configuração de saída")
	flag.BoolVar(&force, "force", false, "Sobrescrever arquivo se existir")
	flag.Parse()

	if _, err := os.Stat(outputPath); err == nil && !force {
		fmt.Printf("Erro: arquivo %s já existe. Use --force para sobrescrever.\n", outputPath)
		os.Exit(1)
	}

	cfg := &config.Config{
		Environment: config.EnvDevelopment,
		Server: config.ServerConfig{
			Port:           8080,
			Host:           "0.0.0.0",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
			TLS:            false,
			BaseURL:        "https://dancart.com.br",
			Domains:        []string{"api.dancart.com.br"},
		},
		Database: config.DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "./dancart.db",
			MaxIdleConns:    10,
			MaxOpenConns:    50,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "warn",
			SlowThreshold:   200 * time.Millisecond,
			MigrationDir:    "./migrations",
			SkipMigrations:  false,
		},
		Cache: config.CacheConfig{
			Enabled: true,
			Type:    "memory",
			TTL:     5 * time.Minute,
			Redis: config.RedisOptions{
				Address:      "localhost:6379",
				PoolSize:     10,
				MinIdleConns: 2,
				MaxRetries:   3,
				ReadTimeout:  3 * time.Second,
				WriteTimeout: 3 * time.Second,
				DialTimeout:  5 * time.Second,
			},
		},
		Auth: config.AuthConfig{
			JWTSecret:       "troque-por-um-segredo-de-32-caracteres",
			CookieName:      "app_session_id",
			SessionDuration: 365 * 24 * time.Hour,
			DevAdminOpenID:  "admin-dev",
			UserCacheTTL:    time.Minute,
		},
		RateLimit: config.RateLimitConfig{
			Enabled:      true,
			Limit:        10,
			Period:       time.Minute,
			GlobalLimit:  300,
			GlobalPeriod: time.Minute,
		},
		Metrics: config.MetricsConfig{
			Enabled:        true,
			PrometheusPath: "/metrics",
		},
		Logging: config.LoggingConfig{
			Level:      "info",
			Production: false,
		},
		Tracing: config.TracingConfig{
			Enabled:       false,
			Endpoint:      "localhost:4317",
			ServiceName:   "dancart-api",
			SamplingRatio: 0.1,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("Erro ao serializar configuração: %v\n", err)
		os.Exit(1)
	}

	yamlStr := string(data)

	re := regexp.MustCompile(`(\s+skipmigrations:\s+false)`)
	yamlStr = re.ReplaceAllString(yamlStr, `$1  # true pula as migrações na inicialização`)

	re = regexp.MustCompile(`(\s+dsn:\s+\S+)`)
	yamlStr = re.ReplaceAllString(yamlStr, `$1  # vazio sobe sem banco (leituras vazias, escritas recusadas)`)

	if err := os.WriteFile(outputPath, []byte(yamlStr), 0o644); err != nil {
		fmt.Printf("Erro ao escrever arquivo: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Arquivo de configuração gerado em: %s\n", outputPath)
}
