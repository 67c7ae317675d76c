// Package read реализует HTTP-обработчик чтения глобального состояния реестра.
package read

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

// Handler управляет HTTP-запросами на чтение состояния реестра.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения состояния.
type Service interface {
	State(ctx context.Context) (*models.LedgerState, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прочитать состояние реестра
// @Description Возвращает флаг паузы, получателя комиссий, период, текущую высоту и счётчик токенов.
// @Tags State
// @Produce  json
// @Success 200 {object} map[string]any "Состояние реестра"
// @Router /state [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.state.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state, err := h.service.State(r.Context())
	if err != nil {
		log.Error("failed to read ledger state", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read ledger state"))
		return
	}

	render.JSON(w, r, response.OKWithData(state))
}
