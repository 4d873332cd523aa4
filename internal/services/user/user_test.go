package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vpetrukhin/user-hub/internal/models"
	"github.com/vpetrukhin/user-hub/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) GetUser(ctx context.Context, userUUID int) (*models.User, error) {
	args := m.Called(ctx, userUUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *RepoMock) FilterUsers(ctx context.Context, filter map[string]any) ([]models.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *RepoMock) UpdateUser(ctx context.Context, userUUID int, fields map[string]any) error {
	return m.Called(ctx, userUUID, fields).Error(0)
}

func (m *RepoMock) DeleteUser(ctx context.Context, userUUID int) error {
	return m.Called(ctx, userUUID).Error(0)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(repo *RepoMock, cache *CacheMock) *UserService {
	return New(repo, cache, 5*time.Minute, newNoopLogger())
}

func TestUserService_Get(t *testing.T) {
	stored := &models.User{UserUUID: 42, FullName: "Test User", Email: "user@example.com"}

	t.Run("попадание в кэш", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "user:42", mock.Anything).
			Run(func(args mock.Arguments) {
				*args.Get(2).(*models.User) = *stored
			}).
			Return(true, nil).Once()

		svc := newService(repo, cache)
		user, err := svc.Get(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, stored.Email, user.Email)

		repo.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
		cache.AssertExpectations(t)
	})

	t.Run("промах кэша и чтение из хранилища", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "user:42", mock.Anything).Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, 42).Return(stored, nil).Once()
		cache.On("Set", mock.Anything, "user:42", stored, 5*time.Minute).Return(nil).Once()

		svc := newService(repo, cache)
		user, err := svc.Get(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, 42, user.UserUUID)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("ошибка кэша не фатальна", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "user:42", mock.Anything).
			Return(false, errors.New("redis down")).Once()
		repo.On("GetUser", mock.Anything, 42).Return(stored, nil).Once()
		cache.On("Set", mock.Anything, "user:42", stored, 5*time.Minute).
			Return(errors.New("redis down")).Once()

		svc := newService(repo, cache)
		user, err := svc.Get(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, 42, user.UserUUID)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "user:99", mock.Anything).Return(false, nil).Once()
		repo.On("GetUser", mock.Anything, 99).Return(nil, repository.ErrNotFound).Once()

		svc := newService(repo, cache)
		_, err := svc.Get(context.Background(), 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_List(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	repo.On("ListUsers", mock.Anything).
		Return([]models.User{{UserUUID: 1}, {UserUUID: 2}}, nil).Once()

	svc := newService(repo, cache)
	users, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserService_Filter(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	isActive := true
	role := 1
	filter := models.UserFilter{IsActive: &isActive, Role: &role}

	repo.On("FilterUsers", mock.Anything, map[string]any{"is_active": true, "role": 1}).
		Return([]models.User{{UserUUID: 5}}, nil).Once()

	svc := newService(repo, cache)
	users, err := svc.Filter(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	repo.AssertExpectations(t)
}

func TestUserService_Update(t *testing.T) {
	fullName := "Renamed User"

	t.Run("успешное обновление инвалидирует кэш", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateUser", mock.Anything, 42, map[string]any{"full_name": fullName}).
			Return(nil).Once()
		cache.On("Invalidate", mock.Anything, "user:42").Return(nil).Once()

		svc := newService(repo, cache)
		err := svc.Update(context.Background(), 42, models.DummyUserFields{FullName: &fullName})
		require.NoError(t, err)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("пустой набор полей", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		svc := newService(repo, cache)
		err := svc.Update(context.Background(), 42, models.DummyUserFields{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyUpdate)
		repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateUser", mock.Anything, 99, mock.Anything).
			Return(repository.ErrNotFound).Once()

		svc := newService(repo, cache)
		err := svc.Update(context.Background(), 99, models.DummyUserFields{FullName: &fullName})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("email занят", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		taken := "taken@example.com"
		repo.On("UpdateUser", mock.Anything, 42, map[string]any{"email": taken}).
			Return(repository.ErrAlreadyExists).Once()

		svc := newService(repo, cache)
		err := svc.Update(context.Background(), 42, models.DummyUserFields{Email: &taken})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUserService_Delete(t *testing.T) {
	t.Run("успешное удаление инвалидирует кэш", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("DeleteUser", mock.Anything, 42).Return(nil).Once()
		cache.On("Invalidate", mock.Anything, "user:42").Return(nil).Once()

		svc := newService(repo, cache)
		require.NoError(t, svc.Delete(context.Background(), 42))

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("пользователь не найден", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("DeleteUser", mock.Anything, 99).Return(repository.ErrNotFound).Once()

		svc := newService(repo, cache)
		err := svc.Delete(context.Background(), 99)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
