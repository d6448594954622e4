package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/diillson/dancart-api/pkg/config"
	"github.com/diillson/dancart-api/pkg/security"
	"go.uber.org/zap"
)

func main() {
	var (
		openID     string
		name       string
		duration   time.Duration
		configPath string
	)
	flag.StringVar(&openID, "open-id", "", "openId do usuário da sessão")
	flag.StringVar(&name, "name", "", "Nome gravado no token")
	flag.DurationVar(&duration, "duration", 0, "Validade do token; padrão auth.sessionDuration")
	flag.StringVar(&configPath, "config", "./config", "Diretório do config.yaml")
	flag.Parse()

	if openID == "" {
		fmt.Println("Erro: o openId não pode ser vazio.")
		fmt.Println("Uso: go run ./cmd/tools/generate_token -open-id=<openId>")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Erro ao carregar configuração: %v\n", err)
		os.Exit(1)
	}
	if duration <= 0 {
		duration = cfg.Auth.SessionDuration
	}

	keys, err := security.NewKeyManager(security.GetJWTSecret(cfg), zap.NewNop())
	if err != nil {
		fmt.Printf("Erro: %v\n", err)
		fmt.Println("\nPara configurar o segredo:")
		fmt.Println("1. Como variável de ambiente: export JWT_SECRET_KEY=<32+ caracteres>")
		fmt.Println("2. No arquivo config.yaml: auth.jwtsecret")
		fmt.Println("3. Via variável DANCART: export DANCART_AUTH_JWTSECRET=<32+ caracteres>")
		os.Exit(1)
	}

	token, err := keys.GenerateToken(openID, name, duration)
	if err != nil {
		fmt.Printf("Erro ao gerar token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nToken de sessão gerado:")
	fmt.Println("------------------------------------------")
	fmt.Println(token)
	fmt.Println("------------------------------------------")
	fmt.Printf("\nopenId: %s\n", openID)
	fmt.Printf("Expira em: %s\n", time.Now().Add(duration).Format(time.RFC3339))
	fmt.Println("\nUse no cabeçalho Authorization:")
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Println("\nou como cookie:")
	fmt.Printf("Cookie: %s=%s\n", cfg.Auth.CookieName, token)
}
