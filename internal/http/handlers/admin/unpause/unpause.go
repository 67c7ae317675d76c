// Package unpause реализует HTTP-обработчик возобновления минтинга.
package unpause

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Memetic-Block/membership-nfts/internal/http/middlewarectx"
	"github.com/Memetic-Block/membership-nfts/internal/http/response"
	"github.com/Memetic-Block/membership-nfts/internal/lib/sl"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// Handler управляет HTTP-запросами на возобновление минтинга.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики возобновления минтинга.
type Service interface {
	Unpause(ctx context.Context, caller models.Caller) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Возобновить минтинг
// @Description Открывает выпуск токенов для всех вызовов. Только для администратора.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Минтинг возобновлён"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/unpause [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.unpause"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Unpause(r.Context(), caller); err != nil {
		log.Error("failed to unpause minting", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("minting unpaused", slog.String("actor", caller.Address))
	render.JSON(w, r, response.OK())
}
