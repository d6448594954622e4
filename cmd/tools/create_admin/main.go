package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/diillson/dancart-api/internal/adapter/database"
	"github.com/diillson/dancart-api/internal/app/auth"
	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		openID     string
		name       string
		email      string
		configPath string
		dbDSN      string
		verbose    bool
	)

	flag.StringVar(&openID, "open-id", "admin-dev", "openId da conta administradora")
	flag.StringVar(&name, "name", "Administrador", "Nome exibido")
	flag.StringVar(&email, "email", "", "Email da conta")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.StringVar(&dbDSN, "dsn", "", "DSN do banco de dados; padrão da configuração")
	flag.BoolVar(&verbose, "verbose", false, "Mostrar logs detalhados")
	flag.Parse()

	openID = strings.TrimSpace(openID)
	if openID == "" {
		fmt.Println("Erro: open-id não pode ser vazio.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	if dbDSN != "" {
		cfg.Database.DSN = dbDSN
	}

	zapCfg := zap.NewProductionConfig()
	if !verbose {
		zapCfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
		zapCfg.OutputPaths = []string{"stderr"}
	}
	logger, err := zapCfg.Build()
	if err != nil {
		fmt.Printf("Erro ao inicializar logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.Database, logger)
	if err != nil {
		fmt.Printf("Erro ao conectar ao banco de dados: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	users := auth.NewUserService(database.NewUserRepository(db.DB(), logger), cfg.Auth.OwnerOpenID, logger)

	role := model.RoleAdmin
	now := time.Now().UTC()
	method := "cli"
	in := model.UpsertUser{
		OpenID:       openID,
		Name:         &name,
		LoginMethod:  &method,
		Role:         &role,
		LastSignedIn: &now,
	}
	if email != "" {
		in.Email = &email
	}

	if err := users.Upsert(ctx, in); err != nil {
		fmt.Printf("Erro ao gravar administrador: %v\n", err)
		os.Exit(1)
	}

	user, err := users.Get(ctx, openID)
	if err != nil || user == nil {
		fmt.Printf("Erro ao ler administrador: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n╭──────────────────────────────────────────╮")
	fmt.Println("│       Administrador gravado com sucesso     │")
	fmt.Println("├──────────────────────────────────────────┤")
	fmt.Printf("│ ID: %-36d │\n", user.ID)
	fmt.Printf("│ openId: %-32s │\n", user.OpenID)
	fmt.Printf("│ Papel: %-33s │\n", user.Role)
	fmt.Println("╰──────────────────────────────────────────╯")
	fmt.Println("\nGere um token de sessão com:")
	fmt.Printf("go run ./cmd/tools/generate_token -open-id=%s\n\n", user.OpenID)
}
