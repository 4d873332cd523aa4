// Package create реализует HTTP-обработчик создания подписки пользователя.
//
// Подписка создается для существующего пользователя и только одна:
// повторное создание для того же user_uuid даёт конфликт.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vpetrukhin/user-hub/internal/http/middlewarectx"
	"github.com/vpetrukhin/user-hub/internal/http/response"
	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	"github.com/vpetrukhin/user-hub/internal/models"
	subservice "github.com/vpetrukhin/user-hub/internal/services/subscription"
)

// Service описывает интерфейс бизнес-логики создания подписки.
type Service interface {
	Create(ctx context.Context, req models.DummySubscription) (*models.Subscription, error)
}

// Handler управляет HTTP-запросами на создание подписки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
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
// @Summary Создание подписки пользователя
// @Tags Subscription
// @Accept  json
// @Produce json
// @Param request body models.DummySubscription true "user_uuid и периоды подписки"
// @Success 200 {object} response.Response "Подписка создана"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Не авторизован"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 409 {object} response.Response "Подписка уже существует"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user/subscription/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	callerUUID, ok := r.Context().Value(middlewarectx.UserUUID).(int)
	if !ok {
		log.Error("failed to get caller user_uuid from context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	log = log.With(slog.Int("caller_uuid", callerUUID))

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded")

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	sub, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, subservice.ErrUserNotFound):
			log.Error("user not found", slog.Int("user_uuid", req.UserUUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, subservice.ErrInvalidPeriod):
			log.Error("invalid subscription period")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid subscription period"))
		case errors.Is(err, subservice.ErrAlreadyExists):
			log.Error("subscription already exists", slog.Int("user_uuid", req.UserUUID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("user with this user_uuid already has a subscription"))
		default:
			log.Error("failed to create subscription", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create subscription"))
		}
		return
	}

	log.Info("subscription created", slog.Int("user_uuid", sub.UserUUID))
	render.JSON(w, r, response.OKWithData("Subscription added successfully", map[string]any{
		"user_uuid": sub.UserUUID,
		"amount":    sub.Periods[0].Amount,
	}))
}
