package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nanmax/newsfeed/internal/transport/http/httperr"
)

// Authenticator проверяет access-токен и возвращает ID и username владельца.
// Реализуется пакетом service.
type Authenticator interface {
	ValidateToken(ctx context.Context, accessToken string) (int64, string, error)
}

// Principal — аутентифицированный пользователь запроса.
// Единственный способ для хендлеров узнать, «кто пришёл».
type Principal struct {
	ID       int64
	Username string
}

type ctxKeyPrincipal struct{}

// RequireAuth пропускает только запросы с валидным Bearer-токеном.
// Проверка самодостаточна (подпись+срок), в хранилище мидлвар не ходит:
// поэтому logout не отзывает уже выпущенные access-токены.
//
// Отказ всегда 401; различаются только сообщения: отсутствие токена и
// невалидный токен.
func RequireAuth(auth Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				httperr.Write(w, r, http.StatusUnauthorized, "token_required", "Access token required")
				return
			}

			uid, username, err := auth.ValidateToken(r.Context(), token)
			if err != nil {
				httperr.Write(w, r, http.StatusUnauthorized, "invalid_token", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyPrincipal{}, Principal{
				ID:       uid,
				Username: username,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom возвращает аутентифицированного пользователя из контекста.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	v := ctx.Value(ctxKeyPrincipal{})
	if v == nil {
		return Principal{}, false
	}

	p, ok := v.(Principal)
	return p, ok
}

// bearerToken извлекает токен из значения заголовка Authorization.
func bearerToken(header string) string {
	const prefix = "Bearer "

	if header == "" || !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
