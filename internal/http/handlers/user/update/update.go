// Package update реализует HTTP-обработчик частичного обновления профиля.
//
// Обновляются только поля, присутствующие в запросе, остальные поля
// документа остаются нетронутыми.
package update

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
	userservice "github.com/vpetrukhin/user-hub/internal/services/user"
)

// Service описывает интерфейс бизнес-логики обновления профиля.
type Service interface {
	Update(ctx context.Context, userUUID int, fields models.DummyUserFields) error
}

// Handler управляет HTTP-запросами на обновление профиля.
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
// @Summary Частичное обновление профиля пользователя
// @Tags User
// @Accept  json
// @Produce json
// @Param request body models.DummyUserUpdate true "user_uuid и обновляемые поля"
// @Success 200 {object} response.Response "Профиль обновлён"
// @Failure 400 {object} response.Response "Некорректный JSON или пустое обновление"
// @Failure 401 {object} response.Response "Не авторизован"
// @Failure 404 {object} response.Response "Пользователь не найден"
// @Failure 409 {object} response.Response "Email уже занят"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /user/update/ [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"
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

	var req models.DummyUserUpdate
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

	err := h.service.Update(r.Context(), req.UserUUID, req.UserData)
	if err != nil {
		switch {
		case errors.Is(err, userservice.ErrUserNotFound):
			log.Error("user not found", slog.Int("user_uuid", req.UserUUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		case errors.Is(err, userservice.ErrEmailTaken):
			log.Error("email already taken")
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("user with this email already exists"))
		case errors.Is(err, userservice.ErrEmptyUpdate):
			log.Error("no fields to update")
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("no fields to update"))
		default:
			log.Error("failed to update user", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update user"))
		}
		return
	}

	log.Info("user updated", slog.Int("user_uuid", req.UserUUID))
	render.JSON(w, r, response.OKWithData("User updated successfully", map[string]any{
		"user_uuid": req.UserUUID,
	}))
}
