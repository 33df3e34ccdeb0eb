// Package middlewarectx содержит HTTP middleware для аутентификации,
// проверки роли администратора и ограничения частоты запросов.
//
// AuthMiddleware разбирает токен из заголовка Authorization, разрешает его
// в пользователя и кладёт пользователя в контекст запроса. Дальнейшие
// обработчики достают его через UserFromContext.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/catering-backend/internal/http/response"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
	"github.com/magabrotheeeer/catering-backend/internal/models"
	"github.com/magabrotheeeer/catering-backend/internal/services/errs"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// UserKey — ключ для пользователя в контексте.
const UserKey Key = "user"

// AuthService описывает интерфейс разрешения токена в пользователя.
type AuthService interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает аутентифицированного пользователя запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok && user != nil
}

// AuthMiddleware возвращает HTTP middleware, который проверяет токен
// в заголовке Authorization и кладёт пользователя в контекст запроса.
//
// Деактивированная учётная запись отличается от невалидного токена:
// клиент получает отдельное сообщение и статус.
func AuthMiddleware(service AuthService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

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

			user, err := service.Authenticate(r.Context(), tokenStr)
			if err != nil {
				if errors.Is(err, errs.ErrAccountDisabled) {
					log.Error("account is deactivated", sl.Err(err))
					w.WriteHeader(http.StatusBadRequest)
					render.JSON(w, r, response.Error("account is deactivated"))
					return
				}
				log.Error("invalid or expired token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminMiddleware пропускает только администраторов.
// Должен стоять после AuthMiddleware.
func AdminMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AdminMiddleware"

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing in context", slog.String("op", op))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if !user.IsAdmin {
				log.Error("admin access denied",
					slog.String("op", op), slog.String("user_uid", user.UID))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
