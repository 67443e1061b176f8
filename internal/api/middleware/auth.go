package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/auth"
)

type contextKey string

const (
	RequesterIDHeader = "X-Requester-ID"

	requesterIDKey contextKey = "requester_id"
	adminKey       contextKey = "admin"

	msgMissingRequesterID = "отсутствует заголовок X-Requester-ID"
	msgMissingToken       = "требуется авторизация"
	msgInvalidToken       = "недействительный токен"
	msgForbidden          = "доступ запрещен"
)

// Auth достает ID заявителя из заголовка X-Requester-ID
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requesterID := strings.TrimSpace(r.Header.Get(RequesterIDHeader))
		if requesterID == "" {
			handlers.RespondUnauthorized(w, msgMissingRequesterID)
			return
		}

		ctx := context.WithValue(r.Context(), requesterIDKey, requesterID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequesterID возвращает ID заявителя, положенный Auth
func GetRequesterID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requesterIDKey).(string)
	return id, ok && id != ""
}

// TokenVerifier проверяет токен бэк-офиса
type TokenVerifier interface {
	RequireRole(token, role string) (*auth.Claims, error)
}

// AdminAuth пропускает только запросы с Bearer токеном роли admin
func AdminAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || strings.TrimSpace(token) == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := verifier.RequireRole(strings.TrimSpace(token), auth.RoleAdmin)
			if err != nil {
				if errors.Is(err, auth.ErrForbidden) {
					handlers.RespondForbidden(w, msgForbidden)
					return
				}
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), adminKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdmin возвращает логин администратора из токена
func GetAdmin(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(adminKey).(string)
	return name, ok
}
