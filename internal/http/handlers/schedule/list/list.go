// Package list реализует HTTP-обработчик чтения всей тарифной лестницы.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Memetic-Block/membership-nfts/internal/http/response"
	"github.com/Memetic-Block/membership-nfts/internal/lib/sl"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// Handler управляет HTTP-запросами на чтение тарифной лестницы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения лестницы.
type Service interface {
	Schedule(ctx context.Context) ([]models.TierFee, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прочитать тарифную лестницу
// @Description Возвращает все уровни с их комиссиями по возрастанию уровня.
// @Tags Schedule
// @Produce  json
// @Success 200 {object} map[string]any "Тарифная лестница"
// @Router /schedule [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	fees, err := h.service.Schedule(r.Context())
	if err != nil {
		log.Error("failed to list tier fees", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list tier fees"))
		return
	}

	render.JSON(w, r, response.OKWithData(fees))
}
