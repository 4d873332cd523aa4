// Package read реализует HTTP-обработчик чтения подписки по user_uuid.
package read

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vpetrukhin/user-hub/internal/http/response"
	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	"github.com/vpetrukhin/user-hub/internal/models"
	subservice "github.com/vpetrukhin/user-hub/internal/services/subscription"
)

// Service описывает интерфейс бизнес-логики чтения подписки.
type Service interface {
	Get(ctx context.Context, userUUID int) (*models.Subscription, error)
}

// Handler управляет HTTP-запросами на чтение подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подписка пользователя по user_uuid
// @Tags Subscription
// @Produce json
// @Param user_uuid path int true "Идентификатор пользователя"
// @Success 200 {object} models.Subscription
// @Failure 400 {object} response.Response "Некорректный user_uuid"
// @Failure 404 {object} response.Response "Подписка не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user/subscription/{user_uuid} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.read"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUUID, err := strconv.Atoi(chi.URLParam(r, "user_uuid"))
	if err != nil || userUUID <= 0 {
		log.Error("invalid user_uuid path parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user_uuid"))
		return
	}

	sub, err := h.service.Get(r.Context(), userUUID)
	if err != nil {
		if errors.Is(err, subservice.ErrSubscriptionNotFound) {
			log.Error("subscription not found", slog.Int("user_uuid", userUUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription data not found"))
			return
		}
		log.Error("failed to get subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to retrieve subscription data"))
		return
	}

	log.Info("subscription found", slog.Int("user_uuid", userUUID))
	render.JSON(w, r, sub)
}
