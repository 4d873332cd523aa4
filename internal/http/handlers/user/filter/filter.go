// Package filter реализует HTTP-обработчик поиска пользователей по условиям.
//
// Разрешён только фиксированный набор полей фильтра, произвольные условия
// запроса в хранилище не пропускаются.
package filter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vpetrukhin/user-hub/internal/http/response"
	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	"github.com/vpetrukhin/user-hub/internal/models"
)

// Service описывает интерфейс бизнес-логики поиска пользователей.
type Service interface {
	Filter(ctx context.Context, filter models.UserFilter) ([]models.User, error)
}

// Handler управляет HTTP-запросами на поиск пользователей.
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
// @Summary Поиск пользователей по условиям
// @Tags User
// @Accept  json
// @Produce json
// @Param request body models.UserFilter true "Условия поиска"
// @Success 200 {array} models.User
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /users/filter/ [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.filter"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.UserFilter
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

	users, err := h.service.Filter(r.Context(), req)
	if err != nil {
		log.Error("failed to filter users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to retrieve users"))
		return
	}
	if users == nil {
		users = []models.User{}
	}

	log.Info("users filtered", slog.Int("count", len(users)))
	render.JSON(w, r, users)
}
