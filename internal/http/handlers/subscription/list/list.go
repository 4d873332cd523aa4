// Package list реализует HTTP-обработчик списка подписок всех пользователей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/vpetrukhin/user-hub/internal/http/response"
	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	"github.com/vpetrukhin/user-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики списка подписок.
type Service interface {
	List(ctx context.Context) ([]models.Subscription, error)
}

// Handler управляет HTTP-запросами на список подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список подписок всех пользователей
// @Tags Subscription
// @Produce json
// @Success 200 {array} models.Subscription
// @Failure 404 {object} response.Response "Подписок нет"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user/subscriptions/ [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	subs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to retrieve user subscriptions"))
		return
	}
	if len(subs) == 0 {
		log.Error("no user subscriptions found")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no user subscriptions found"))
		return
	}

	log.Info("subscriptions listed", slog.Int("count", len(subs)))
	render.JSON(w, r, subs)
}
