package security

import (
	"os"

	"github.com/diillson/dancart-api/pkg/config"
)

// GetJWTSecret obtém o segredo JWT na seguinte ordem:
// 1. Variável de ambiente JWT_SECRET_KEY
// 2. auth.jwtSecret da configuração (arquivo ou DANCART_AUTH_JWTSECRET)
func GetJWTSecret(cfg *config.Config) []byte {
	if secret := os.Getenv("JWT_SECRET_KEY"); secret != "" {
		return []byte(secret)
	}

	if cfg != nil && cfg.Auth.JWTSecret != "" {
		return []byte(cfg.Auth.JWTSecret)
	}

	return nil
}
