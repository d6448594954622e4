//go:build !devauth

package auth

import "go.uber.org/zap"

func newDevBypass(Authenticator, *UserService, string, *zap.Logger) (Authenticator, bool) {
	return nil, false
}
