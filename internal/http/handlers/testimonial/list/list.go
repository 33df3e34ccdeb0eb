// Package list реализует HTTP-обработчики списков отзывов:
// публичного (только одобренные) и админского (все).
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/catering-backend/internal/http/response"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
	"github.com/magabrotheeeer/catering-backend/internal/models"
)

// Handler управляет HTTP-запросами на списки отзывов.
type Handler struct {
	log          *slog.Logger
	service      Service
	approvedOnly bool // true — публичная витрина, false — модерация.
}

// Service описывает интерфейс бизнес-логики списков отзывов.
type Service interface {
	ListApproved(ctx context.Context) ([]*models.Testimonial, error)
	ListAll(ctx context.Context) ([]*models.Testimonial, error)
}

// NewApproved создает Handler публичного списка одобренных отзывов.
func NewApproved(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, approvedOnly: true}
}

// NewAll создает Handler полного списка отзывов для модерации.
func NewAll(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, approvedOnly: false}
}

// ServeHTTP godoc
// @Summary Список отзывов
// @Description Публичный маршрут возвращает одобренные отзывы, админский — все.
// @Tags Testimonials
// @Produce json
// @Success 200 {object} response.Response "Отзывы"
// @Router /testimonials [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.testimonial.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var items []*models.Testimonial
	var err error
	if h.approvedOnly {
		items, err = h.service.ListApproved(r.Context())
	} else {
		items, err = h.service.ListAll(r.Context())
	}
	if err != nil {
		log.Error("failed to list testimonials", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err, "could not list testimonials")))
		return
	}

	render.JSON(w, r, response.OKWithData(items))
}
