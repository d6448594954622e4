package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/diillson/dancart-api/internal/domain/model"
	"github.com/diillson/dancart-api/internal/domain/repository"
	"github.com/diillson/dancart-api/pkg/cache"
	apperrors "github.com/diillson/dancart-api/pkg/errors"
	"github.com/diillson/dancart-api/pkg/security"
	"go.uber.org/zap"
)

// DevCookieName é o cookie aceito pelo autenticador de desenvolvimento
const DevCookieName = "dev-admin"

// ErrNoCredential indica que a requisição não trouxe cookie de sessão nem Bearer token
var ErrNoCredential = fmt.Errorf("credencial ausente: %w", apperrors.ErrUnauthorized)

// ErrSessionsDisabled indica que não há segredo JWT configurado para validar sessões
var ErrSessionsDisabled = fmt.Errorf("sessões desabilitadas: %w", apperrors.ErrUnauthorized)

// Authenticator resolve a identidade de uma requisição.
// Qualquer erro é tratado pelo chamador como "sem identidade".
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) (*model.User, error)
}

// DevSession é implementado apenas pelo autenticador de desenvolvimento
type DevSession interface {
	DevCookie() *http.Cookie
}

// SessionOptions configura o autenticador de sessão
type SessionOptions struct {
	CookieName      string
	SessionDuration time.Duration
	UserCacheTTL    time.Duration
}

// SessionAuthenticator valida o JWT de sessão (cookie ou Bearer) e carrega o usuário pelo openId
type SessionAuthenticator struct {
	keys    *security.KeyManager
	users   *UserService
	cache   cache.Cache
	opts    SessionOptions
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewSessionAuthenticator cria o autenticador de sessão
func NewSessionAuthenticator(keys *security.KeyManager, users *UserService, c cache.Cache, opts SessionOptions, logger *zap.Logger) *SessionAuthenticator {
	if c == nil {
		c = &cache.NoOpCache{}
	}
	return &SessionAuthenticator{
		keys:    keys,
		users:   users,
		cache:   c,
		opts:    opts,
		logger:  logger,
		nowFunc: time.Now,
	}
}

func userCacheKey(openID string) string {
	return "user:" + openID
}

// Authenticate extrai o token, valida a assinatura e resolve o usuário.
// Usuário ainda não persistido é criado a partir das claims.
func (a *SessionAuthenticator) Authenticate(ctx context.Context, r *http.Request) (*model.User, error) {
	token := a.tokenFrom(r)
	if token == "" {
		return nil, ErrNoCredential
	}
	if a.keys == nil {
		return nil, ErrSessionsDisabled
	}

	claims, err := a.keys.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	var cached model.User
	if found, err := a.cache.Get(ctx, userCacheKey(claims.OpenID), &cached); err == nil && found {
		return &cached, nil
	}

	now := a.nowFunc().UTC()
	signIn := model.UpsertUser{OpenID: claims.OpenID, LastSignedIn: &now}
	if claims.Name != "" {
		signIn.Name = &claims.Name
	}
	if err := a.users.Upsert(ctx, signIn); err != nil {
		a.logger.Warn("Falha ao registrar acesso do usuário", zap.String("open_id", claims.OpenID), zap.Error(err))
	}

	user, err := a.users.Get(ctx, claims.OpenID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("usuário da sessão não encontrado: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}

	if err := a.cache.Set(ctx, userCacheKey(user.OpenID), user, a.opts.UserCacheTTL); err != nil {
		a.logger.Warn("Falha ao armazenar usuário no cache", zap.String("open_id", user.OpenID), zap.Error(err))
	}

	return user, nil
}

func (a *SessionAuthenticator) tokenFrom(r *http.Request) string {
	if a.opts.CookieName != "" {
		if cookie, err := r.Cookie(a.opts.CookieName); err == nil && cookie.Value != "" {
			return cookie.Value
		}
	}

	header := r.Header.Get("Authorization")
	if token := strings.TrimPrefix(header, "Bearer "); token != header {
		return strings.TrimSpace(token)
	}
	return ""
}

// IssueToken gera o token de sessão de um openId
func (a *SessionAuthenticator) IssueToken(openID, name string) (string, error) {
	if a.keys == nil {
		return "", ErrSessionsDisabled
	}
	return a.keys.GenerateToken(openID, name, a.opts.SessionDuration)
}

// SessionCookie monta o cookie de sessão para o token
func (a *SessionAuthenticator) SessionCookie(r *http.Request, token string) *http.Cookie {
	cookie := baseCookie(r, a.opts.CookieName)
	cookie.Value = token
	cookie.MaxAge = int(a.opts.SessionDuration.Seconds())
	return cookie
}

// Logout devolve os cookies que encerram a sessão e descarta o usuário do cache
func (a *SessionAuthenticator) Logout(ctx context.Context, r *http.Request, user *model.User) []*http.Cookie {
	if user != nil {
		if err := a.cache.Delete(ctx, userCacheKey(user.OpenID)); err != nil {
			a.logger.Warn("Falha ao remover usuário do cache", zap.String("open_id", user.OpenID), zap.Error(err))
		}
	}

	session := baseCookie(r, a.opts.CookieName)
	session.MaxAge = -1

	dev := baseCookie(r, DevCookieName)
	dev.MaxAge = -1

	return []*http.Cookie{session, dev}
}

// baseCookie replica as opções de cookie do site: httpOnly, path raiz e SameSite=None só sob HTTPS
func baseCookie(r *http.Request, name string) *http.Cookie {
	secure := r != nil && (r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https"))
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
	}
}
