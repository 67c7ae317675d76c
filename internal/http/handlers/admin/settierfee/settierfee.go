// Package settierfee реализует HTTP-обработчик установки комиссии уровня.
//
// Операция доступна только администратору; нарушение инвариантов тарифной
// лестницы (зарезервированный уровень, невозрастающая комиссия, пропуск
// уровня) возвращается вызывающему с соответствующим статусом.
package settierfee

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Memetic-Block/membership-nfts/internal/http/middlewarectx"
	"github.com/Memetic-Block/membership-nfts/internal/http/response"
	"github.com/Memetic-Block/membership-nfts/internal/lib/sl"
	"github.com/Memetic-Block/membership-nfts/internal/models"
)

// Handler управляет HTTP-запросами на установку комиссии уровня.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики установки комиссии.
type Service interface {
	SetTierFee(ctx context.Context, caller models.Caller, tier, fee uint64) error
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
// @Summary Установить комиссию уровня
// @Description Записывает комиссию уровня с проверкой инвариантов лестницы. Только для администратора.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param tier path int true "Уровень"
// @Param request body models.SetTierFeeRequest true "Новая комиссия"
// @Success 200 {object} map[string]any "Комиссия обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или уровень"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Нарушение инвариантов лестницы"
// @Router /admin/schedule/{tier} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.settierfee"
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

	var req models.SetTierFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	caller, ok := middlewarectx.CallerFromContext(r.Context())
	if !ok {
		log.Error("caller not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.SetTierFee(r.Context(), caller, tier, req.Fee); err != nil {
		log.Error("failed to set tier fee", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("tier fee updated", slog.Uint64("tier", tier), slog.Uint64("fee", req.Fee))
	render.JSON(w, r, response.OK())
}
