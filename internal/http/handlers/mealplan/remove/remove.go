// Package remove реализует HTTP-обработчик скрытия плана питания из каталога.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/catering-backend/internal/http/response"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
)

// Handler управляет HTTP-запросами на скрытие плана питания.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики скрытия плана.
type Service interface {
	Deactivate(ctx context.Context, id int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Скрыть план питания
// @Description Деактивирует позицию каталога без удаления данных.
// @Tags MealPlans
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID плана"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.ErrorResponse "План не найден"
// @Router /meal-plans/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.mealplan.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid meal plan id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid meal plan id"))
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		log.Error("failed to deactivate meal plan", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err, "could not deactivate meal plan")))
		return
	}

	log.Info("meal plan deactivated", slog.Int("id", id))
	render.JSON(w, r, response.OK())
}
