// Package setreceiver реализует HTTP-обработчик смены получателя комиссий.
package setreceiver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Memetic-Block/membership-nfts/internal/http/middlewarectx"
	"github.com/Memetic-Block/membership-nfts/internal/http/response"
	"github.com/Memetic-Block/membership-nfts/internal/lib/sl"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// Handler управляет HTTP-запросами на смену получателя комиссий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены получателя.
type Service interface {
	SetFeeReceiver(ctx context.Context, caller models.Caller, address string) error
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
// @Summary Сменить получателя комиссий
// @Description Назначает адрес, на который уходят удержанные комиссии. Только для администратора.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.SetReceiverRequest true "Новый получатель"
// @Success 200 {object} map[string]any "Получатель обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/receiver [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.setreceiver"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SetReceiverRequest
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

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.SetFeeReceiver(r.Context(), caller, req.Address); err != nil {
		log.Error("failed to set fee receiver", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("fee receiver updated", slog.String("address", req.Address))
	render.JSON(w, r, response.OK())
}
