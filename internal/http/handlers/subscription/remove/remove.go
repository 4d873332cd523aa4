// Package remove реализует HTTP-обработчик удаления подписки пользователя.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vpetrukhin/user-hub/internal/http/middlewarectx"
	"github.com/vpetrukhin/user-hub/internal/http/response"
	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	subservice "github.com/vpetrukhin/user-hub/internal/services/subscription"
)

// Service описывает интерфейс бизнес-логики удаления подписки.
type Service interface {
	Delete(ctx context.Context, userUUID int) error
}

// Handler управляет HTTP-запросами на удаление подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удаление подписки пользователя по user_uuid
// @Tags Subscription
// @Produce json
// @Param user_uuid path int true "Идентификатор пользователя"
// @Success 200 {object} response.Response "Подписка удалена"
// @Failure 400 {object} response.Response "Некорректный user_uuid"
// @Failure 401 {object} response.Response "Не авторизован"
// @Failure 404 {object} response.Response "Подписка не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user/subscription/{user_uuid} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"
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

	userUUID, err := strconv.Atoi(chi.URLParam(r, "user_uuid"))
	if err != nil || userUUID <= 0 {
		log.Error("invalid user_uuid path parameter")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid user_uuid"))
		return
	}

	if err := h.service.Delete(r.Context(), userUUID); err != nil {
		if errors.Is(err, subservice.ErrSubscriptionNotFound) {
			log.Error("subscription not found", slog.Int("user_uuid", userUUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("subscription data not found"))
			return
		}
		log.Error("failed to delete subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete subscription"))
		return
	}

	log.Info("subscription deleted", slog.Int("user_uuid", userUUID))
	render.JSON(w, r, response.OKWithData("Subscription deleted successfully", map[string]any{
		"user_uuid": userUUID,
	}))
}
