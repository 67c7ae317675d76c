// Package advanceheight реализует HTTP-обработчик тика высоты реестра.
//
// Высота — счётчик, замещающий время; в боевом окружении её двигает хост,
// здесь тик выполняется административным вызовом.
package advanceheight

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

// Handler управляет HTTP-запросами на сдвиг высоты.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики сдвига высоты.
type Service interface {
	AdvanceHeight(ctx context.Context, caller models.Caller, by uint64) (uint64, error)
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
// @Summary Сдвинуть высоту реестра
// @Description Увеличивает высоту реестра на заданное число единиц. Только для администратора.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param request body models.AdvanceHeightRequest true "Величина сдвига"
// @Success 200 {object} map[string]any "Новая высота"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Router /admin/height/advance [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.advanceheight"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AdvanceHeightRequest
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

	height, err := h.service.AdvanceHeight(r.Context(), caller, req.By)
	if err != nil {
		log.Error("failed to advance height", sl.Err(err))
		w.WriteHeader(response.ErrorStatus(err))
		render.JSON(w, r, response.Error(response.ErrorMessage(err)))
		return
	}

	log.Info("ledger height advanced", slog.Uint64("height", height))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"current_height": height,
	}))
}
