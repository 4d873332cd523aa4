package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/vpetrukhin/user-hub/internal/http/middlewarectx"
	"github.com/vpetrukhin/user-hub/internal/models"
	subservice "github.com/vpetrukhin/user-hub/internal/services/subscription"
)

type ServiceMock struct{ mock.Mock }

func (m *ServiceMock) Create(ctx context.Context, req models.DummySubscription) (*models.Subscription, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	validBody := models.DummySubscription{
		UserUUID: 42,
		Periods: []models.DummyPeriod{{
			StartDate: "2026-01-01",
			EndDate:   "2026-02-01",
			Amount:    500,
		}},
	}

	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(m *ServiceMock)
		wantStatusCode int
		wantStatus     string
		wantMessage    string
		wantData       map[string]any
	}{
		{
			name:        "успешное создание подписки",
			requestBody: validBody,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, validBody).Return(&models.Subscription{
					UserUUID: 42,
					Periods: []models.Period{{
						StartDate: "2026-01-01",
						EndDate:   "2026-02-01",
						Amount:    500,
					}},
				}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantStatus:     "success",
			wantMessage:    "Subscription added successfully",
			wantData: map[string]any{
				"user_uuid": float64(42),
				"amount":    float64(500),
			},
		},
		{
			name:           "некорректный json",
			requestBody:    "not a json",
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "failure",
			wantMessage:    "invalid request body",
		},
		{
			name: "пустой набор периодов",
			requestBody: models.DummySubscription{
				UserUUID: 42,
			},
			setupMock:      func(_ *ServiceMock) {},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "failure",
			wantMessage:    "field Periods is a required field",
		},
		{
			name:        "пользователь не найден",
			requestBody: validBody,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, validBody).
					Return(nil, subservice.ErrUserNotFound).Once()
			},
			wantStatusCode: http.StatusNotFound,
			wantStatus:     "failure",
			wantMessage:    "user not found",
		},
		{
			name:        "некорректный период",
			requestBody: validBody,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, validBody).
					Return(nil, subservice.ErrInvalidPeriod).Once()
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "failure",
			wantMessage:    "invalid subscription period",
		},
		{
			name:        "подписка уже существует",
			requestBody: validBody,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, validBody).
					Return(nil, subservice.ErrAlreadyExists).Once()
			},
			wantStatusCode: http.StatusConflict,
			wantStatus:     "failure",
			wantMessage:    "user with this user_uuid already has a subscription",
		},
		{
			name:        "внутренняя ошибка сервиса",
			requestBody: validBody,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, validBody).
					Return(nil, errors.New("db error")).Once()
			},
			wantStatusCode: http.StatusInternalServerError,
			wantStatus:     "failure",
			wantMessage:    "failed to create subscription",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			tt.setupMock(serviceMock)
			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(v)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v1/user/subscription/", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			ctx = context.WithValue(ctx, middlewarectx.UserUUID, 42)
			req = req.WithContext(ctx)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStatus, got["status"])
			assert.Equal(t, tt.wantMessage, got["message"])
			if tt.wantData != nil {
				assert.Equal(t, tt.wantData, got["data"])
			}

			serviceMock.AssertExpectations(t)
		})
	}
}

func TestCreateHandler_NoCallerInContext(t *testing.T) {
	serviceMock := new(ServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/user/subscription/", bytes.NewReader([]byte(`{}`)))
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var got map[string]any
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "failure", got["status"])
	assert.Equal(t, "unauthorized", got["message"])

	serviceMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
