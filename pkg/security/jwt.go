package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var (
	ErrSecretTooShort = errors.New("jwt secret key muito curta")
	ErrTokenExpired   = errors.New("token expirado")
	ErrTokenInvalid   = errors.New("token inválido")
)

// Claims carrega a identidade externa (openId) da sessão
type Claims struct {
	OpenID string `json:"openId"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

type KeyManager struct {
	secretKey []byte
	logger    *zap.Logger
}

func NewKeyManager(secretKey []byte, logger *zap.Logger) (*KeyManager, error) {
	if len(secretKey) < 32 {
		return nil, ErrSecretTooShort
	}

	return &KeyManager{
		secretKey: secretKey,
		logger:    logger,
	}, nil
}

func (km *KeyManager) GenerateToken(openID, name string, duration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		OpenID: openID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   openID,
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(km.secretKey)
	if err != nil {
		km.logger.Error("falha ao gerar token JWT", zap.Error(err))
		return "", err
	}

	return tokenString, nil
}

func (km *KeyManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return km.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		km.logger.Debug("falha ao validar token JWT", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.OpenID != "" {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
