// Package usersetactive реализует HTTP-обработчики включения и выключения
// учётной записи пользователя администратором.
package usersetactive

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/catering-backend/internal/http/response"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
)

// Handler управляет HTTP-запросами на смену статуса учётной записи.
// Один и тот же обработчик обслуживает активацию и деактивацию,
// различие задаётся при создании.
type Handler struct {
	log     *slog.Logger
	service Service
	active  bool // Целевое состояние учётной записи.
}

// Service описывает интерфейс бизнес-логики смены статуса.
type Service interface {
	SetUserActive(ctx context.Context, uid string, active bool) error
}

// NewActivate создает Handler, включающий учётную запись.
func NewActivate(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, active: true}
}

// NewDeactivate создает Handler, выключающий учётную запись.
func NewDeactivate(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, active: false}
}

// ServeHTTP godoc
// @Summary Включить или выключить учётную запись
// @Description Меняет статус учётной записи пользователя. Только для администраторов.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Param uid path string true "UID пользователя"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /auth/users/{uid}/activate [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.usersetactive"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "uid")
	if _, err := uuid.Parse(uid); err != nil {
		log.Error("invalid user uid", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user uid"))
		return
	}

	if err := h.service.SetUserActive(r.Context(), uid, h.active); err != nil {
		log.Error("failed to change account status", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err, "could not change account status")))
		return
	}

	log.Info("account status changed",
		slog.String("user_uid", uid), slog.Bool("active", h.active))
	render.JSON(w, r, response.OK())
}
