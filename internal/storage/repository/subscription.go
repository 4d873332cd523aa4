package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vpetrukhin/user-hub/internal/models"
	"github.com/vpetrukhin/user-hub/internal/storage/mongo"
)

// SaveSubscription сохраняет документ подписки пользователя.
// Вторая подписка на тот же user_uuid даёт ErrAlreadyExists.
func (r *Repository) SaveSubscription(ctx context.Context, sub *models.Subscription) error {
	const op = "repository.SaveSubscription"
	if err := r.store.Upload(ctx, r.subscriptions, sub); err != nil {
		if mongo.IsDuplicateKey(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetSubscription возвращает подписку пользователя по user_uuid.
func (r *Repository) GetSubscription(ctx context.Context, userUUID int) (*models.Subscription, error) {
	const op = "repository.GetSubscription"
	var sub models.Subscription
	err := r.store.Query(ctx, r.subscriptions, bson.M{"user_uuid": userUUID}, &sub)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sub, nil
}

// ListSubscriptions возвращает подписки всех пользователей.
func (r *Repository) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	const op = "repository.ListSubscriptions"
	var subs []models.Subscription
	if err := r.store.QueryAll(ctx, r.subscriptions, nil, &subs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return subs, nil
}

// ReplacePeriods заменяет последовательность периодов подписки пользователя.
// Используется для добавления нового периода: вызывающий слой передаёт
// существующую последовательность с дописанным элементом.
func (r *Repository) ReplacePeriods(ctx context.Context, userUUID int, periods []models.Period) error {
	const op = "repository.ReplacePeriods"
	matched, err := r.store.Update(ctx, r.subscriptions, bson.M{"user_uuid": userUUID},
		map[string]any{"subscription": periods}, false)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if matched == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteSubscription удаляет подписку пользователя по user_uuid.
func (r *Repository) DeleteSubscription(ctx context.Context, userUUID int) error {
	const op = "repository.DeleteSubscription"
	deleted, err := r.store.Delete(ctx, r.subscriptions, bson.M{"user_uuid": userUUID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
