package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/pkg/config"
	"github.com/diillson/dancart-api/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	var (
		action       string
		name         string
		driver       string
		dsn          string
		migrationDir string
		configPath   string
	)

	flag.StringVar(&action, "action", "migrate", "Ação (migrate, status, create)")
	flag.StringVar(&name, "name", "", "Nome da migração (apenas para action=create)")
	flag.StringVar(&driver, "driver", "", "Driver de banco de dados (sqlite, mysql, postgres); padrão da configuração")
	flag.StringVar(&dsn, "dsn", "", "DSN do banco de dados; padrão da configuração")
	flag.StringVar(&migrationDir, "dir", "", "Diretório de migrações; padrão da configuração")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger("info", false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	dbConfig := cfg.Database
	if driver != "" {
		dbConfig.Driver = driver
	}
	if dsn != "" {
		dbConfig.DSN = dsn
	}
	if migrationDir != "" {
		dbConfig.MigrationDir = migrationDir
	}

	ctx := context.Background()

	switch action {
	case "migrate":
		dbConfig.SkipMigrations = false
		db, err := database.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Migrações aplicadas com sucesso")

	case "status":
		dbConfig.SkipMigrations = true
		db, err := database.NewDatabase(ctx, dbConfig, logger)
		if err != nil {
			logger.Fatal("Falha ao inicializar banco de dados", zap.Error(err))
		}
		defer db.Close()

		status, err := db.Migrations().Status(ctx)
		if err != nil {
			logger.Fatal("Falha ao consultar migrações", zap.Error(err))
		}
		for _, s := range status {
			applied := "pendente"
			if s.Applied {
				applied = "aplicada em " + s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%d  %-50s %s\n", s.Version, s.Name, applied)
		}

	case "create":
		if name == "" {
			logger.Fatal("Nome da migração é obrigatório para action=create")
		}

		path, err := database.NewMigrationManager(nil, logger, dbConfig.MigrationDir).CreateMigration(name)
		if err != nil {
			logger.Fatal("Falha ao criar migração", zap.Error(err))
		}

		logger.Info("Migração criada", zap.String("path", path))

	default:
		logger.Fatal("Ação desconhecida", zap.String("action", action))
	}
}
