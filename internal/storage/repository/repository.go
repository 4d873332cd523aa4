// Package repository связывает обобщённые операции документного хранилища
// с конкретными сущностями: пользователями и подписками.
//
// Имена коллекций разрешаются один раз при конструировании из конфига.
// Точечные операции всегда ключуются по user_uuid. Композиция вместо
// наследования: один Repository держит общее хранилище и имена коллекций.
package repository

import (
	"errors"

	"github.com/vpetrukhin/user-hub/internal/config"
	"github.com/vpetrukhin/user-hub/internal/storage/mongo"
)

var (
	// ErrNotFound запись не найдена, решение о 404 принимает верхний слой.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists запись нарушает уникальный индекс.
	ErrAlreadyExists = errors.New("already exists")
)

// Repository реализует операции над пользователями и подписками
// поверх обобщённого хранилища.
type Repository struct {
	store         *mongo.Storage
	usersColl     string
	subscriptions string
}

// New создает Repository, разрешая имена коллекций из конфига.
func New(store *mongo.Storage, cfg config.StorageConnection) *Repository {
	return &Repository{
		store:         store,
		usersColl:     cfg.UsersCollection,
		subscriptions: cfg.SubscriptionsCollection,
	}
}
