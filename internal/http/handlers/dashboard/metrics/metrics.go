// Package metrics реализует HTTP-обработчик сводки метрик подписок
// для панели администратора.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/catering-backend/internal/http/response"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
	"github.com/magabrotheeeer/catering-backend/internal/models"
)

// Handler управляет HTTP-запросами на метрики панели администратора.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс агрегации метрик.
type Service interface {
	Metrics(ctx context.Context, start, end time.Time) (*models.DashboardMetrics, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Метрики подписок
// @Description Возвращает сводку за диапазон дат. По умолчанию — с начала текущего месяца.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Начало диапазона (2006-01-02)"
// @Param end_date query string false "Конец диапазона (2006-01-02)"
// @Success 200 {object} response.Response "Метрики"
// @Failure 403 {object} response.ErrorResponse "Доступ запрещен"
// @Failure 422 {object} response.ErrorResponse "Некорректный диапазон"
// @Router /dashboard/admin/metrics [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.metrics"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var start, end time.Time
	if raw := r.URL.Query().Get("start_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("invalid start date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid start_date, expected format 2006-01-02"))
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			log.Error("invalid end date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid end_date, expected format 2006-01-02"))
			return
		}
		end = parsed
	}

	metrics, err := h.service.Metrics(r.Context(), start, end)
	if err != nil {
		log.Error("failed to collect metrics", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err, "could not collect metrics")))
		return
	}

	render.JSON(w, r, response.OKWithData(metrics))
}
