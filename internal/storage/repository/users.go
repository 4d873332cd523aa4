package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vpetrukhin/user-hub/internal/models"
	"github.com/vpetrukhin/user-hub/internal/storage/mongo"
)

// userUUIDCounter имя счётчика идентификаторов пользователей.
const userUUIDCounter = "user_uuid"

// SaveUser выдаёт пользователю следующий user_uuid и сохраняет документ.
// Нарушение уникальности email или user_uuid даёт ErrAlreadyExists.
func (r *Repository) SaveUser(ctx context.Context, user *models.User) (int, error) {
	const op = "repository.SaveUser"
	uuid, err := r.store.NextUUID(ctx, userUUIDCounter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	user.UserUUID = uuid

	if err := r.store.Upload(ctx, r.usersColl, user); err != nil {
		if mongo.IsDuplicateKey(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return uuid, nil
}

// GetUser возвращает пользователя по его user_uuid.
func (r *Repository) GetUser(ctx context.Context, userUUID int) (*models.User, error) {
	const op = "repository.GetUser"
	var user models.User
	err := r.store.Query(ctx, r.usersColl, bson.M{"user_uuid": userUUID}, &user)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// GetUserByEmail возвращает пользователя по email.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "repository.GetUserByEmail"
	var user models.User
	err := r.store.Query(ctx, r.usersColl, bson.M{"email": email}, &user)
	if errors.Is(err, mongo.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &user, nil
}

// ListUsers возвращает всех пользователей.
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "repository.ListUsers"
	var users []models.User
	if err := r.store.QueryAll(ctx, r.usersColl, nil, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// FilterUsers возвращает пользователей по условиям фильтра.
func (r *Repository) FilterUsers(ctx context.Context, filter map[string]any) ([]models.User, error) {
	const op = "repository.FilterUsers"
	var users []models.User
	if err := r.store.QueryAll(ctx, r.usersColl, bson.M(filter), &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateUser обновляет перечисленные поля пользователя, остальные поля
// документа не затрагиваются.
func (r *Repository) UpdateUser(ctx context.Context, userUUID int, fields map[string]any) error {
	const op = "repository.UpdateUser"
	matched, err := r.store.Update(ctx, r.usersColl, bson.M{"user_uuid": userUUID}, fields, false)
	if err != nil {
		if mongo.IsDuplicateKey(err) {
			return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if matched == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// DeleteUser удаляет пользователя по user_uuid.
// Подписка пользователя при этом не удаляется, каскада нет.
func (r *Repository) DeleteUser(ctx context.Context, userUUID int) error {
	const op = "repository.DeleteUser"
	deleted, err := r.store.Delete(ctx, r.usersColl, bson.M{"user_uuid": userUUID})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
