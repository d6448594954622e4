package auth

import (
	"github.com/diillson/dancart-api/pkg/config"
	"go.uber.org/zap"
)

// Select escolhe o autenticador uma única vez, na inicialização.
// O desvio de desenvolvimento só existe em binários compilados com a tag devauth
// e só é usado quando o ambiente é development.
func Select(environment string, session Authenticator, users *UserService, devAdminOpenID string, logger *zap.Logger) Authenticator {
	if environment != config.EnvDevelopment {
		return session
	}

	dev, ok := newDevBypass(session, users, devAdminOpenID, logger)
	if !ok {
		logger.Info("Binário sem a tag devauth, login de desenvolvimento indisponível")
		return session
	}

	logger.Warn("Autenticador de desenvolvimento ativo: cookie dev-admin aceito",
		zap.String("dev_admin_open_id", devAdminOpenID))
	return dev
}
