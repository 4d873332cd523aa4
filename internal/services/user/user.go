// Package user содержит бизнес-логику работы с профилями пользователей:
// чтение по идентификатору и списком, поиск по фильтру, частичное обновление
// и удаление. Чтения по идентификатору идут через кэш, мутации его
// инвалидируют. Ошибки кэша не фатальны для запроса.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vpetrukhin/user-hub/internal/lib/sl"
	"github.com/vpetrukhin/user-hub/internal/models"
	"github.com/vpetrukhin/user-hub/internal/storage/repository"
)

var (
	// ErrUserNotFound пользователь с таким user_uuid не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken новый email уже занят другим пользователем.
	ErrEmailTaken = errors.New("email already taken")
	// ErrEmptyUpdate в запросе обновления нет ни одного поля.
	ErrEmptyUpdate = errors.New("no fields to update")
)

// UserRepository описывает контракт для работы с пользователями в хранилище.
type UserRepository interface {
	GetUser(ctx context.Context, userUUID int) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	FilterUsers(ctx context.Context, filter map[string]any) ([]models.User, error)
	UpdateUser(ctx context.Context, userUUID int, fields map[string]any) error
	DeleteUser(ctx context.Context, userUUID int) error
}

// Cache описывает контракт кэша профилей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// UserService реализует операции над профилями поверх репозитория и кэша.
type UserService struct {
	repo     UserRepository
	cache    Cache
	cacheTTL time.Duration
	log      *slog.Logger
}

// New создает новый экземпляр UserService.
func New(repo UserRepository, cache Cache, cacheTTL time.Duration, log *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

func cacheKey(userUUID int) string {
	return fmt.Sprintf("user:%d", userUUID)
}

// Get возвращает профиль пользователя по user_uuid, сначала из кэша.
func (s *UserService) Get(ctx context.Context, userUUID int) (*models.User, error) {
	const op = "services.user.Get"

	var cached models.User
	hit, err := s.cache.Get(ctx, cacheKey(userUUID), &cached)
	if err != nil {
		s.log.Warn("cache read failed", sl.Err(err))
	}
	if hit {
		return &cached, nil
	}

	user, err := s.repo.GetUser(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cacheKey(userUUID), user, s.cacheTTL); err != nil {
		s.log.Warn("cache write failed", sl.Err(err))
	}
	return user, nil
}

// List возвращает всех пользователей.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	const op = "services.user.List"
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Filter возвращает пользователей по условиям фильтра.
// Пропускается только фиксированный набор полей из models.UserFilter.
func (s *UserService) Filter(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	const op = "services.user.Filter"
	users, err := s.repo.FilterUsers(ctx, filter.Fields())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// Update обновляет перечисленные поля профиля и инвалидирует кэш.
func (s *UserService) Update(ctx context.Context, userUUID int, fields models.DummyUserFields) error {
	const op = "services.user.Update"
	set := fields.Fields()
	if len(set) == 0 {
		return fmt.Errorf("%s: %w", op, ErrEmptyUpdate)
	}
	if err := s.repo.UpdateUser(ctx, userUUID, set); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		if errors.Is(err, repository.ErrAlreadyExists) {
			return fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, cacheKey(userUUID)); err != nil {
		s.log.Warn("cache invalidation failed", sl.Err(err))
	}
	return nil
}

// Delete удаляет пользователя и инвалидирует кэш.
// Подписка пользователя не трогается, каскадного удаления нет.
func (s *UserService) Delete(ctx context.Context, userUUID int) error {
	const op = "services.user.Delete"
	if err := s.repo.DeleteUser(ctx, userUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, cacheKey(userUUID)); err != nil {
		s.log.Warn("cache invalidation failed", sl.Err(err))
	}
	return nil
}
