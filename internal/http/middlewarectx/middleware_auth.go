// Package middlewarectx содержит HTTP middleware для обработки и проверки JWT токенов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization,
// и в случае успеха добавляет в контекст user_uuid владельца токена
// для дальнейшего использования в обработчиках.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vpetrukhin/user-hub/internal/http/response"
	jwtlib "github.com/vpetrukhin/user-hub/internal/lib/jwt"
	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	"github.com/vpetrukhin/user-hub/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserUUID — ключ для числового идентификатора пользователя в контексте.
const UserUUID Key = "user_uuid"

// AuthService описывает интерфейс сервиса для проверки access-токена.
type AuthService interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Отказы различимы: истёкший токен — 401, подделанный или повреждённый — 403,
// отсутствующий владелец — 401.
func JWTMiddleware(authService AuthService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := authService.CurrentUser(r.Context(), tokenStr)
			if err != nil {
				switch {
				case errors.Is(err, jwtlib.ErrTokenExpired):
					log.Error("token has expired", sl.Err(err))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("token has expired"))
				case errors.Is(err, jwtlib.ErrInvalidToken):
					log.Error("invalid token", sl.Err(err))
					w.WriteHeader(http.StatusForbidden)
					render.JSON(w, r, response.Error("invalid token"))
				default:
					log.Error("token verification failed", sl.Err(err))
					w.WriteHeader(http.StatusUnauthorized)
					render.JSON(w, r, response.Error("invalid or expired token"))
				}
				return
			}

			ctx := context.WithValue(r.Context(), UserUUID, user.UserUUID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
