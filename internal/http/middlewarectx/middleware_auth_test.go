package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	jwtlib "github.com/vpetrukhin/user-hub/internal/lib/jwt"
	"github.com/vpetrukhin/user-hub/internal/models"
	authservice "github.com/vpetrukhin/user-hub/internal/services/auth"
)

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(m *AuthServiceMock)
		wantStatusCode int
		wantNextCalled bool
		wantUserUUID   int
		wantBody       string
	}{
		{
			name:       "действительный токен",
			authHeader: "Bearer valid-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("CurrentUser", mock.Anything, "valid-token").
					Return(&models.User{UserUUID: 42}, nil).Once()
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
			wantUserUUID:   42,
		},
		{
			name:           "нет заголовка Authorization",
			authHeader:     "",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "missing or invalid authorization header",
		},
		{
			name:           "заголовок без префикса Bearer",
			authHeader:     "Token some-token",
			setupMock:      func(_ *AuthServiceMock) {},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "missing or invalid authorization header",
		},
		{
			name:       "истёкший токен",
			authHeader: "Bearer expired-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("CurrentUser", mock.Anything, "expired-token").
					Return(nil, jwtlib.ErrTokenExpired).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "token has expired",
		},
		{
			name:       "подделанный токен",
			authHeader: "Bearer forged-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("CurrentUser", mock.Anything, "forged-token").
					Return(nil, jwtlib.ErrInvalidToken).Once()
			},
			wantStatusCode: http.StatusForbidden,
			wantBody:       "invalid token",
		},
		{
			name:       "владелец токена удалён",
			authHeader: "Bearer orphan-token",
			setupMock: func(m *AuthServiceMock) {
				m.On("CurrentUser", mock.Anything, "orphan-token").
					Return(nil, authservice.ErrUserNotFound).Once()
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			tt.setupMock(authMock)

			nextCalled := false
			var gotUserUUID int
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if v, ok := r.Context().Value(UserUUID).(int); ok {
					gotUserUUID = v
				}
				w.WriteHeader(http.StatusOK)
			})

			mw := JWTMiddleware(authMock, newNoopLogger())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantNextCalled {
				assert.Equal(t, tt.wantUserUUID, gotUserUUID)
			}
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			authMock.AssertExpectations(t)
		})
	}
}
