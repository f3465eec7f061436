// auth.go — middleware аутентификации по session token.
// Токен выпускается сервисом аутентификации (HS256, локальный секрет)
// и принимается двумя способами: заголовок Authorization (Bearer)
// или cookie "auth-token". Claims помещаются в контекст запроса.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/alfurqan/quran-cms/internal/api/errors"
	"github.com/alfurqan/quran-cms/internal/domain/rbac"
)

// contextKey — тип для ключей контекста (избегаем коллизий).
type contextKey string

// ContextKeySession — сессия актора в контексте запроса.
const ContextKeySession contextKey = "session"

// AuthCookieName — имя cookie с session token.
const AuthCookieName = "auth-token"

// sessionClaims — claims session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	// LoginCode — код доступа, под которым выполнен вход.
	LoginCode string `json:"loginCode"`
	// Role — роль актора (creator, verifier).
	Role string `json:"role"`
}

// SessionAuth — middleware аутентификации по session token.
type SessionAuth struct {
	secret []byte
	leeway time.Duration
	logger *slog.Logger
}

// NewSessionAuth создаёт middleware аутентификации.
// secret — секрет подписи HS256 (QC_JWT_SECRET).
func NewSessionAuth(secret string, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{
		secret: []byte(secret),
		leeway: 30 * time.Second,
		logger: logger.With(slog.String("component", "session_auth")),
	}
}

// extractToken достаёт session token из запроса:
// заголовок Authorization имеет приоритет над cookie.
func extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Middleware возвращает HTTP middleware аутентификации.
// Валидирует подпись (HS256) и срок действия токена, проверяет роль
// и помещает rbac.Session в контекст.
func (a *SessionAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				apierrors.Unauthorized(w, "Требуется аутентификация")
				return
			}

			claims := &sessionClaims{}
			_, err := jwt.ParseWithClaims(tokenString, claims,
				func(*jwt.Token) (any, error) { return a.secret, nil },
				jwt.WithValidMethods([]string{"HS256"}),
				jwt.WithExpirationRequired(),
				jwt.WithLeeway(a.leeway),
			)
			if err != nil {
				a.logger.Debug("Session token не прошёл валидацию",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Unauthorized(w, "Невалидный или просроченный токен")
				return
			}

			if claims.LoginCode == "" || !rbac.IsValidRole(claims.Role) {
				apierrors.Unauthorized(w, "Невалидный токен")
				return
			}

			session := rbac.Session{
				LoginCode: claims.LoginCode,
				Role:      claims.Role,
			}
			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole возвращает middleware, требующий одну из указанных ролей.
// Должен использоваться ПОСЛЕ SessionAuth.Middleware().
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := SessionFromContext(r.Context())
			if !ok {
				apierrors.Unauthorized(w, "Отсутствует сессия в контексте")
				return
			}

			for _, role := range roles {
				if session.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			apierrors.Forbidden(w, fmt.Sprintf("Недостаточно прав: требуется роль %s", strings.Join(roles, " или ")))
		})
	}
}

// SessionFromContext извлекает сессию актора из контекста запроса.
func SessionFromContext(ctx context.Context) (rbac.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(rbac.Session)
	return session, ok
}
