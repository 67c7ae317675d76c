// Package mint реализует HTTP-обработчик выпуска нового токена абонемента.
//
// Handler принимает JSON-запрос с уровнем, получателем и переданной суммой,
// валидирует его, извлекает идентичность вызывающего из контекста,
// вызывает бизнес-логику выпуска и возвращает итог в JSON-формате.
//
// В случае ошибок формируются соответствующие HTTP-ответы с описанием проблемы.
package mint

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

// Handler управляет HTTP-запросами на выпуск токенов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики выпуска токена.
type Service interface {
	Mint(ctx context.Context, caller models.Caller, req models.MintRequest) (*models.ChargeResult, error)
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
// @Summary Выпустить токен абонемента
// @Description Выпускает новый токен с подпиской указанного уровня. Возвращает ID токена, удержанную комиссию и возврат.
// @Tags Memberships
// @Accept  json
// @Produce  json
// @Param request body models.MintRequest true "Параметры выпуска"
// @Success 200 {object} map[string]any "Успешный выпуск"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Вызывающий не авторизован"
// @Failure 402 {object} response.ErrorResponse "Недостаточная оплата"
// @Failure 409 {object} response.ErrorResponse "Минтинг на паузе или перевод отклонён"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /memberships/mint [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.membership.mint"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.MintRequest
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

	result, err := h.service.Mint(r.Context(), caller, req)
	if err != nil {
		log.Error("failed to mint token", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("minted membership token", slog.Int64("token_id", result.TokenID))
	render.JSON(w, r, response.OKWithData(result))
}
