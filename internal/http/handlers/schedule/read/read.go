// Package read реализует HTTP-обработчик чтения комиссии одного уровня.
package read

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Memetic-Block/membership-nfts/internal/http/response"
	"github.com/Memetic-Block/membership-nfts/internal/lib/sl"
)

// Handler управляет HTTP-запросами на чтение комиссии уровня.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения комиссии.
type Service interface {
	TierFee(ctx context.Context, tier uint64) (uint64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прочитать комиссию уровня
// @Description Возвращает комиссию уровня; 0 означает, что уровень выключен.
// @Tags Schedule
// @Produce  json
// @Param tier path int true "Уровень"
// @Success 200 {object} map[string]any "Комиссия уровня"
// @Failure 400 {object} response.ErrorResponse "Некорректный уровень"
// @Router /schedule/{tier} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	tier, err := strconv.ParseUint(chi.URLParam(r, "tier"), 10, 64)
	if err != nil {
		log.Error("failed to decode tier from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode tier from url"))
		return
	}

	fee, err := h.service.TierFee(r.Context(), tier)
	if err != nil {
		log.Error("failed to read tier fee", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read tier fee"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"tier": tier,
		"fee":  fee,
	}))
}
