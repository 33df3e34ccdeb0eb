// Package logout реализует HTTP-обработчик выхода из системы.
//
// Токены самодостаточны и не хранятся на сервере, поэтому выход — это
// подтверждение для клиента, что токен можно забыть.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/catering-backend/internal/http/response"
)

// Handler управляет HTTP-запросами на выход пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Подтверждает выход. Клиент должен удалить сохранённый токен.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	h.log.Info("user logged out",
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "successfully logged out",
	}))
}
