package read

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vpetrukhin/user-hub/internal/models"
	userservice "github.com/vpetrukhin/user-hub/internal/services/user"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Get(ctx context.Context, userUUID int) (*models.User, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		uuidParam      string
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:      "успешное чтение профиля",
			uuidParam: "42",
			setupMock: func(m *ServiceMock) {
				m.On("Get", mock.Anything, 42).Return(&models.User{
					UserUUID: 42,
					FullName: "Test User",
					Email:    "user@example.com",
				}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `"email":"user@example.com"`,
		},
		{
			name:           "нечисловой user_uuid",
			uuidParam:      "abc",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"message":"invalid user_uuid"`,
		},
		{
			name:           "нулевой user_uuid",
			uuidParam:      "0",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `"message":"invalid user_uuid"`,
		},
		{
			name:      "пользователь не найден",
			uuidParam: "99",
			setupMock: func(m *ServiceMock) {
				m.On("Get", mock.Anything, 99).
					Return(nil, userservice.ErrUserNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `"message":"user not found"`,
		},
		{
			name:      "ошибка сервиса",
			uuidParam: "42",
			setupMock: func(m *ServiceMock) {
				m.On("Get", mock.Anything, 42).
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `"message":"failed to retrieve user data"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)
			handler := New(newNoopLogger(), serviceMock)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/user/"+tt.uuidParam, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("user_uuid", tt.uuidParam)
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestReadHandler_HidesPasswordHash(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("Get", mock.Anything, 42).Return(&models.User{
		UserUUID:     42,
		Email:        "user@example.com",
		PasswordHash: "bcrypt-hash",
	}, nil).Once()

	handler := New(newNoopLogger(), serviceMock)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/42", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("user_uuid", "42")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "bcrypt-hash")

	var got map[string]any
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	_, hasPassword := got["password"]
	assert.False(t, hasPassword)
}
