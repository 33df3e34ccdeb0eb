// Package list реализует HTTP-обработчик списка подписок.
//
// Обычный пользователь видит только свои подписки, администратор —
// все подписки сервиса с пагинацией.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/catering-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/catering-backend/internal/http/response"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
	"github.com/magabrotheeeer/catering-backend/internal/models"
)

// Handler управляет HTTP-запросами на список подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списков подписок.
type Service interface {
	ListForOwner(ctx context.Context, ownerUID string) ([]*models.Subscription, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Subscription, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список подписок
// @Description Возвращает подписки текущего пользователя. Администратор видит все.
// @Tags Subscriptions
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Размер страницы (только для администратора)" default(50)
// @Param offset query int false "Смещение (только для администратора)" default(0)
// @Success 200 {object} response.Response "Список подписок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var subs []*models.Subscription
	var err error
	if user.IsAdmin {
		limit := 50
		offset := 0
		if v, aerr := strconv.Atoi(r.URL.Query().Get("limit")); aerr == nil && v > 0 && v <= 200 {
			limit = v
		}
		if v, aerr := strconv.Atoi(r.URL.Query().Get("offset")); aerr == nil && v >= 0 {
			offset = v
		}
		subs, err = h.service.ListAll(r.Context(), limit, offset)
	} else {
		subs, err = h.service.ListForOwner(r.Context(), user.UID)
	}
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err, "could not list subscriptions")))
		return
	}

	render.JSON(w, r, response.OKWithData(subs))
}
