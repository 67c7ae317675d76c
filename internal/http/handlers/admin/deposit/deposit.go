// Package deposit реализует HTTP-обработчик зачисления учётной валюты на счёт.
package deposit

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

// Handler управляет HTTP-запросами на зачисление средств.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики зачисления.
type Service interface {
	Deposit(ctx context.Context, caller models.Caller, address string, amount uint64) error
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
// @Summary Зачислить средства на счёт
// @Description Кредитует счёт участника учётной валютой. Только для администратора.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.DepositRequest true "Счёт и сумма"
// @Success 200 {object} map[string]any "Средства зачислены"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/bank/deposit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.deposit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DepositRequest
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

	if err := h.service.Deposit(r.Context(), caller, req.Address, req.Amount); err != nil {
		log.Error("failed to deposit", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("deposit applied", slog.String("address", req.Address), slog.Uint64("amount", req.Amount))
	render.JSON(w, r, response.OK())
}
