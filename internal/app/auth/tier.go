package auth

import (
	"context"

	"github.com/diillson/dancart-api/internal/domain/model"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
)

// Mensagens fixas devolvidas nas falhas de autorização
const (
	UnauthenticatedMessage = "Faça login para continuar (10001)"
	AdminRequiredMessage   = "Você não tem permissão para esta ação (10002)"
)

// Tier é o nível de confiança exigido por um procedimento
type Tier int

const (
	Public Tier = iota
	Authenticated
	Admin
)

func (t Tier) String() string {
	switch t {
	case Public:
		return "public"
	case Authenticated:
		return "authenticated"
	case Admin:
		return "admin"
	}
	return "unknown"
}

// Authorize verifica se o usuário resolvido satisfaz o nível pedido.
// Sem identidade o erro é UNAUTHORIZED; com identidade sem papel admin, FORBIDDEN.
func Authorize(tier Tier, user *model.User) error {
	switch tier {
	case Public:
		return nil
	case Authenticated:
		if user == nil {
			return apperrors.Unauthorized(UnauthenticatedMessage, nil)
		}
		return nil
	default:
		if user == nil {
			return apperrors.Unauthorized(UnauthenticatedMessage, nil)
		}
		if !user.IsAdmin() {
			return apperrors.Forbidden(AdminRequiredMessage, nil)
		}
		return nil
	}
}

type userKey struct{}

// WithUser guarda a identidade resolvida no contexto da requisição
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext devolve a identidade resolvida ou nil
func UserFromContext(ctx context.Context) *model.User {
	user, _ := ctx.Value(userKey{}).(*model.User)
	return user
}
