// Package calculateprice реализует HTTP-обработчик расчёта стоимости
// подписки без её оформления.
package calculateprice

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/catering-backend/internal/http/response"
	"github.com/magabrotheeeer/catering-backend/internal/lib/sl"
)

// Handler управляет HTTP-запросами на расчёт стоимости.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс расчёта стоимости подписки.
type Service interface {
	CalculatePrice(plan string, mealTypes, deliveryDays []string) (float64, error)
}

// Request — параметры расчёта стоимости.
type Request struct {
	Plan         string   `json:"plan" validate:"required"`
	MealTypes    []string `json:"meal_types" validate:"required,min=1"`
	DeliveryDays []string `json:"delivery_days" validate:"required,min=1"`
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Рассчитать стоимость подписки
// @Description Возвращает месячную стоимость для выбранных опций без оформления.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Параметры расчёта"
// @Success 200 {object} response.Response "Стоимость"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /subscriptions/calculate-price [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.calculateprice"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	price, err := h.service.CalculatePrice(req.Plan, req.MealTypes, req.DeliveryDays)
	if err != nil {
		log.Error("failed to calculate price", sl.Err(err))
		w.WriteHeader(response.StatusCode(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err, "could not calculate price")))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"total_price": price,
	}))
}
