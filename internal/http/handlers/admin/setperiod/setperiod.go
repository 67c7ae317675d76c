// Package setperiod реализует HTTP-обработчик смены периода подписки.
package setperiod

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

// Handler управляет HTTP-запросами на смену периода подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены периода.
type Service interface {
	SetSubscriptionPeriod(ctx context.Context, caller models.Caller, period uint64) error
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
// @Summary Сменить период подписки
// @Description Устанавливает число единиц высоты, добавляемых при каждом charge. Только для администратора.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.SetPeriodRequest true "Новый период"
// @Success 200 {object} map[string]any "Период обновлён"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /admin/period [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.setperiod"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SetPeriodRequest
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

	if err := h.service.SetSubscriptionPeriod(r.Context(), caller, req.Period); err != nil {
		log.Error("failed to set subscription period", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("subscription period updated", slog.Uint64("period", req.Period))
	render.JSON(w, r, response.OK())
}
