package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/service"
	"github.com/diillson/dancart-api/internal/observability"
	"github.com/diillson/dancart-api/pkg/config"
	"github.com/diillson/dancart-api/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var (
		mes        string
		configPath string
	)
	flag.StringVar(&mes, "mes", "", "Mês de referência (AAAA-MM); padrão mês corrente")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
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
		logger.Warn("Falha ao inicializar Sentry", zap.Error(err))
	}
	defer flush()

	now := time.Now()
	referencia := model.FirstOfMonth(model.DateOf(now))
	if mes != "" {
		t, err := time.Parse("2006-01", mes)
		if err != nil {
			logger.Fatal("Mês inválido, use AAAA-MM", zap.String("mes", mes))
		}
		referencia = model.DateOf(t)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.Database, logger)
	if err != nil {
		observability.CaptureErr(err)
		logger.Fatal("Falha ao conectar ao banco de dados", zap.Error(err))
	}
	defer db.Close()

	services := service.NewServices(db.DB(), cfg.Auth.OwnerOpenID, nil, logger)

	lote, err := services.Cobranca.GerarLote(ctx, referencia, now)
	if err != nil {
		observability.CaptureErr(err)
		logger.Fatal("Falha ao gerar mensalidades", zap.Error(err))
	}

	fmt.Printf("Referência: %s\n", lote.MesReferencia.Time().Format("01/2006"))
	fmt.Printf("Criadas:    %d\n", lote.Criadas)
	fmt.Printf("Ignoradas:  %d\n", lote.Ignoradas)
	fmt.Printf("Atrasadas:  %d\n", lote.Atrasadas)
}
