// Package subscription содержит бизнес-логику работы с подписками:
// создание, чтение, добавление периода и удаление.
//
// На пользователя приходится не больше одного документа подписки,
// обновление добавляет период в конец последовательности, не заменяя её.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vpetrukhin/user-hub/internal/lib/timestamp"
	"github.com/vpetrukhin/user-hub/internal/models"
	"github.com/vpetrukhin/user-hub/internal/storage/repository"
)

var (
	// ErrUserNotFound подписка ссылается на несуществующего пользователя.
	ErrUserNotFound = errors.New("user not found")
	// ErrSubscriptionNotFound у пользователя нет подписки.
	ErrSubscriptionNotFound = errors.New("subscription not found")
	// ErrAlreadyExists у пользователя уже есть подписка.
	ErrAlreadyExists = errors.New("subscription already exists")
	// ErrInvalidPeriod даты периода не парсятся или конец раньше начала.
	ErrInvalidPeriod = errors.New("invalid subscription period")
)

// dateLayout формат дат периода в запросах.
const dateLayout = "2006-01-02"

// SubscriptionRepository описывает контракт для работы с подписками в хранилище.
type SubscriptionRepository interface {
	SaveSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, userUUID int) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]models.Subscription, error)
	ReplacePeriods(ctx context.Context, userUUID int, periods []models.Period) error
	DeleteSubscription(ctx context.Context, userUUID int) error
}

// UserGetter проверяет существование пользователя перед созданием подписки.
type UserGetter interface {
	GetUser(ctx context.Context, userUUID int) (*models.User, error)
}

// SubscriptionService реализует операции над подписками.
type SubscriptionService struct {
	subs  SubscriptionRepository
	users UserGetter
	loc   *time.Location
}

// New создает новый экземпляр SubscriptionService.
func New(subs SubscriptionRepository, users UserGetter, loc *time.Location) *SubscriptionService {
	return &SubscriptionService{
		subs:  subs,
		users: users,
		loc:   loc,
	}
}

func validatePeriod(p models.DummyPeriod) error {
	start, err := time.Parse(dateLayout, p.StartDate)
	if err != nil {
		return ErrInvalidPeriod
	}
	end, err := time.Parse(dateLayout, p.EndDate)
	if err != nil {
		return ErrInvalidPeriod
	}
	if end.Before(start) {
		return ErrInvalidPeriod
	}
	return nil
}

func (s *SubscriptionService) newPeriod(p models.DummyPeriod) models.Period {
	now := timestamp.Now(s.loc)
	return models.Period{
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Amount:    p.Amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Create создает подписку пользователя с непустой последовательностью периодов.
//
// Пользователь должен существовать, вторая подписка на тот же user_uuid
// не допускается: быстрая проверка даёт отказ сразу, гарантию даёт
// уникальный индекс хранилища.
func (s *SubscriptionService) Create(ctx context.Context, req models.DummySubscription) (*models.Subscription, error) {
	const op = "services.subscription.Create"

	for _, p := range req.Periods {
		if err := validatePeriod(p); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if _, err := s.users.GetUser(ctx, req.UserUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if _, err := s.subs.GetSubscription(ctx, req.UserUUID); err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := timestamp.Now(s.loc)
	sub := &models.Subscription{
		UserUUID:  req.UserUUID,
		Periods:   make([]models.Period, 0, len(req.Periods)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, p := range req.Periods {
		sub.Periods = append(sub.Periods, s.newPeriod(p))
	}

	if err := s.subs.SaveSubscription(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// Get возвращает подписку пользователя по user_uuid.
func (s *SubscriptionService) Get(ctx context.Context, userUUID int) (*models.Subscription, error) {
	const op = "services.subscription.Get"
	sub, err := s.subs.GetSubscription(ctx, userUUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sub, nil
}

// List возвращает подписки всех пользователей.
func (s *SubscriptionService) List(ctx context.Context) ([]models.Subscription, error) {
	const op = "services.subscription.List"
	subs, err := s.subs.ListSubscriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// AddPeriod добавляет период в конец последовательности подписки пользователя.
// Существующие периоды не меняются. Если подписки ещё нет, она создается
// с единственным переданным периодом.
func (s *SubscriptionService) AddPeriod(ctx context.Context, userUUID int, p models.DummyPeriod) (*models.Subscription, error) {
	const op = "services.subscription.AddPeriod"

	if err := validatePeriod(p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	existing, err := s.subs.GetSubscription(ctx, userUUID)
	if errors.Is(err, repository.ErrNotFound) {
		return s.Create(ctx, models.DummySubscription{
			UserUUID: userUUID,
			Periods:  []models.DummyPeriod{p},
		})
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	periods := append(existing.Periods, s.newPeriod(p))
	if err := s.subs.ReplacePeriods(ctx, userUUID, periods); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	existing.Periods = periods
	return existing, nil
}

// Delete удаляет подписку пользователя.
func (s *SubscriptionService) Delete(ctx context.Context, userUUID int) error {
	const op = "services.subscription.Delete"
	if err := s.subs.DeleteSubscription(ctx, userUUID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrSubscriptionNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
