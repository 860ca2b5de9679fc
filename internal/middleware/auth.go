package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/themis-api/internal/service"
)

type ctxKey int

const userIDKey ctxKey = iota

// TokenParser проверяет access-токен
type TokenParser interface {
	ParseAccess(token string) (*service.Claims, error)
}

// Auth пропускает запрос только с действительным access-токеном в заголовке
// "Authorization: Bearer <token>"
func Auth(parser TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "authentication credentials were not provided")
				return
			}

			claims, err := parser.ParseAccess(token)
			if err != nil {
				logger.Debug("rejected access token",
					slog.String("path", r.URL.Path),
					slog.Any("error", err),
				)
				unauthorized(w, "token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID возвращает id сотрудника, прошедшего аутентификацию
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
