// Package refresh реализует HTTP-обработчик обмена refresh-токена
// на новый access-токен.
package refresh

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/vpetrukhin/user-hub/internal/http/response"
	jwtlib "github.com/vpetrukhin/user-hub/internal/lib/jwt"
	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	authservice "github.com/vpetrukhin/user-hub/internal/services/auth"
)

// RefreshRequest данные запроса обмена токена.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Service описывает интерфейс бизнес-логики обмена токенов.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Handler управляет HTTP-запросами на обмен токенов.
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
// @Summary Обмен refresh-токена на новый access-токен
// @Tags User
// @Accept  json
// @Produce json
// @Param request body RefreshRequest true "Refresh-токен"
// @Success 200 {object} response.Response "Новый access-токен"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Токен истёк или владелец не найден"
// @Failure 403 {object} response.Response "Повреждённый или подделанный токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /user/token/refresh [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.refresh"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req RefreshRequest
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

	accessToken, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenExpired):
			log.Error("refresh token has expired")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("token has expired"))
		case errors.Is(err, jwtlib.ErrInvalidToken):
			log.Error("invalid refresh token")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("invalid token"))
		case errors.Is(err, authservice.ErrUserNotFound):
			log.Error("token owner not found")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to refresh token", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to refresh token"))
		}
		return
	}

	log.Info("access token refreshed")
	render.JSON(w, r, response.OKWithData("Token refreshed", map[string]any{
		"access_token": accessToken,
		"token_type":   authservice.TokenType,
	}))
}
