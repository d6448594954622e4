package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/diillson/dancart-api/internal/app"
	"github.com/diillson/dancart-api/internal/observability"
	"github.com/diillson/dancart-api/pkg/config"
	"github.com/diillson/dancart-api/pkg/logging"
	"github.com/diillson/dancart-api/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

func tlsConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
	}
}

func baseServer(router http.Handler, cfg *config.Config, addr string) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}
}

// setupServer configura HTTP puro, TLS com certificados próprios ou Let's Encrypt
func setupServer(router http.Handler, cfg *config.Config, logger *zap.Logger) *http.Server {
	plainAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	if cfg.IsDevelopment() || !cfg.Server.TLS {
		logger.Info("Iniciando em modo HTTP",
			zap.Bool("tls_disabled", !cfg.Server.TLS),
			zap.String("env", cfg.Environment),
			zap.Int("port", cfg.Server.Port))
		return baseServer(router, cfg, plainAddr)
	}

	hasCertificates := cfg.Server.CertFile != "" && cfg.Server.KeyFile != ""
	if hasCertificates {
		for _, file := range []string{cfg.Server.CertFile, cfg.Server.KeyFile} {
			if _, err := os.Stat(file); os.IsNotExist(err) {
				logger.Error("Arquivo de certificado não encontrado", zap.String("file", file))
				hasCertificates = false
			}
		}
	}

	if hasCertificates {
		logger.Info("Usando certificados TLS fornecidos",
			zap.String("certFile", cfg.Server.CertFile),
			zap.String("keyFile", cfg.Server.KeyFile))

		server := baseServer(router, cfg, ":443")
		server.TLSConfig = tlsConfig()
		go startHTTPRedirector(http.HandlerFunc(redirectHTTPS), logger)
		return server
	}

	domains := cfg.Server.Domains
	if env := os.Getenv("SERVER_DOMAINS"); env != "" {
		domains = strings.Split(env, ",")
	}

	validDomains := make([]string, 0, len(domains))
	for _, domain := range domains {
		domain = strings.TrimSpace(domain)
		if domain != "" && domain != "localhost" && domain != "127.0.0.1" {
			validDomains = append(validDomains, domain)
		}
	}

	if len(validDomains) == 0 {
		logger.Warn("Nenhum domínio válido para Let's Encrypt. Usando HTTP.", zap.Strings("domains", domains))
		return baseServer(router, cfg, plainAddr)
	}

	email := os.Getenv("LETSENCRYPT_EMAIL")
	certManager := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(validDomains...),
		Cache:      autocert.DirCache("./certs"),
		Email:      email,
	}

	server := baseServer(router, cfg, ":443")
	server.TLSConfig = tlsConfig()
	server.TLSConfig.GetCertificate = certManager.GetCertificate

	// desafios ACME e redirecionamento na porta 80
	go startHTTPRedirector(certManager.HTTPHandler(http.HandlerFunc(redirectHTTPS)), logger)

	logger.Info("Let's Encrypt configurado",
		zap.Strings("domains", validDomains),
		zap.String("email", email))
	return server
}

func startHTTPRedirector(handler http.Handler, logger *zap.Logger) {
	httpServer := &http.Server{
		Addr:              ":80",
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Iniciando redirecionamento HTTP -> HTTPS", zap.String("addr", httpServer.Addr))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Erro no servidor de redirecionamento", zap.Error(err))
	}
}

func redirectHTTPS(w http.ResponseWriter, r *http.Request) {
	target := "https://" + r.Host + r.URL.Path
	if len(r.URL.RawQuery) > 0 {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusMovedPermanently)
}

func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Production)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	flush, err := observability.InitSentry(cfg.Sentry, cfg.Environment)
	if err != nil {
		logger.Error("Falha ao inicializar Sentry", zap.Error(err))
	}
	defer flush()

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tp, err := telemetry.NewTracerProvider(ctx, cfg.Tracing, cfg.Environment, logger)
		if err != nil {
			logger.Error("Falha ao inicializar tracer", zap.Error(err))
		} else {
			logger.Info("Tracer inicializado", zap.String("endpoint", cfg.Tracing.Endpoint))
			defer tp.Shutdown(context.Background())
		}
	}

	initCtx, span := otel.Tracer("dancart.main").Start(ctx, "Server Initialization")
	application, err := app.NewApp(initCtx, cfg, logger)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.End()
		observability.CaptureErr(err)
		logger.Fatal("Falha ao inicializar aplicação", zap.Error(err))
	}
	span.End()
	defer application.Close()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	application.RegisterRoutes(router)

	server := setupServer(router, cfg, logger)

	go func() {
		var err error
		switch {
		case server.TLSConfig != nil && cfg.Server.CertFile != "" && cfg.Server.KeyFile != "":
			logger.Info("Iniciando servidor HTTPS", zap.String("addr", server.Addr))
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		case server.TLSConfig != nil:
			logger.Info("Iniciando servidor HTTPS com Let's Encrypt", zap.String("addr", server.Addr))
			err = server.ListenAndServeTLS("", "")
		default:
			logger.Info("Iniciando servidor HTTP", zap.String("addr", server.Addr))
			err = server.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.CaptureErr(err)
			logger.Fatal("Erro ao iniciar servidor", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Erro ao encerrar servidor", zap.Error(err))
	}

	logger.Info("Servidor encerrado com sucesso")
}
