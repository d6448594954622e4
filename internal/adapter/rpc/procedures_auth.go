package rpc

import (
	"github.com/diillson/dancart-api/internal/app/auth"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
)

func authProcedures(s Services) []Procedure {
	return []Procedure{
		NewQuery("auth.me", auth.Public, func(call *Call, _ NoInput) (any, error) {
			if call.User == nil {
				return nil, nil
			}
			return call.User, nil
		}),

		NewMutation("auth.logout", auth.Public, func(call *Call, _ NoInput) (any, error) {
			if s.Sessions != nil {
				for _, cookie := range s.Sessions.Logout(call.Context(), call.Request, call.User) {
					call.SetCookie(cookie)
				}
			}
			return success, nil
		}),

		// disponível apenas quando o autenticador de desenvolvimento foi escolhido na inicialização
		NewMutation("auth.devLogin", auth.Public, func(call *Call, _ NoInput) (any, error) {
			dev, ok := s.Authenticator.(auth.DevSession)
			if !ok {
				return nil, apperrors.Forbidden("Login de desenvolvimento disponível apenas em modo de desenvolvimento", nil)
			}
			call.SetCookie(dev.DevCookie())
			return success, nil
		}),
	}
}
