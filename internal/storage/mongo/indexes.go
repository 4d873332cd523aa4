package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes создает уникальные индексы, на которых держится целостность
// данных: email и user_uuid пользователя, user_uuid подписки (одна подписка
// на пользователя). Проверки на уровне приложения остаются только быстрым
// путём к 409, гарантию даёт индекс.
func (s *Storage) EnsureIndexes(ctx context.Context, usersCollection, subscriptionsCollection string) error {
	const op = "storage.mongo.EnsureIndexes"
	if usersCollection == "" || subscriptionsCollection == "" {
		return fmt.Errorf("%s: %w: collection name required", op, ErrMissingAttribute)
	}

	_, err := s.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_uuid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.db.Collection(subscriptionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_uuid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
