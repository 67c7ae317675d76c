// Package balance реализует HTTP-обработчик чтения остатка счёта вызывающего.
package balance

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Memetic-Block/membership-nfts/internal/http/middlewarectx"
	"github.com/Memetic-Block/membership-nfts/internal/http/response"
	"github.com/Memetic-Block/membership-nfts/internal/lib/sl"
)

// Handler управляет HTTP-запросами на чтение остатка.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения остатка.
type Service interface {
	Balance(ctx context.Context, address string) (uint64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Прочитать остаток счёта
// @Description Возвращает остаток счёта вызывающего в учётной валюте.
// @Tags Bank
// @Produce  json
// @Success 200 {object} map[string]any "Остаток счёта"
// @Failure 401 {object} response.ErrorResponse "Вызывающий не авторизован"
// @Router /bank/balance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.bank.balance"
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

	balance, err := h.service.Balance(r.Context(), caller.Address)
	if err != nil {
		log.Error("failed to read balance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read balance"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"address": caller.Address,
		"balance": balance,
	}))
}
