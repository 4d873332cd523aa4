package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// countersCollection коллекция счётчиков числовых идентификаторов.
const countersCollection = "counters"

// NextUUID атомарно выдаёт следующий числовой идентификатор для именованного
// счётчика через $inc с upsert-ом. Схема "найти максимум и прибавить единицу"
// здесь не используется: под конкурентной регистрацией она выдаёт дубликаты.
func (s *Storage) NextUUID(ctx context.Context, name string) (int, error) {
	const op = "storage.mongo.NextUUID"
	if name == "" {
		return 0, fmt.Errorf("%s: %w: counter name required", op, ErrMissingAttribute)
	}

	var counter struct {
		Seq int `bson:"seq"`
	}
	err := s.db.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return counter.Seq, nil
}
