// Package mongo реализует обобщённый слой доступа к документному хранилищу.
//
// Storage выполняет по одному вызову драйвера на операцию: вставка (одного
// документа или набора), поиск (точечный или курсором по всем совпадениям),
// $set-обновление и удаление. Перед каждым вызовом аргументы проверяются,
// отсутствие обязательного аргумента и неподдерживаемый тип данных дают
// различимые ошибки — это контрактные нарушения, а не ошибки пользователя.
//
// Отсутствие результата поиска — это ErrNotFound, решение о 404 принимает
// вызывающий слой.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vpetrukhin/user-hub/internal/lib/timestamp"
)

var (
	// ErrMissingAttribute обязательный аргумент операции отсутствует.
	ErrMissingAttribute = errors.New("missing attribute")
	// ErrTypeMismatch аргумент операции имеет неподдерживаемый тип.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotFound по фильтру не нашлось ни одного документа.
	ErrNotFound = errors.New("not found")
)

// Storage обобщённое документное хранилище поверх одной базы mongodb.
type Storage struct {
	client *mongo.Client
	db     *mongo.Database
	loc    *time.Location
}

// New подключается к mongodb и проверяет соединение ping-ом.
func New(ctx context.Context, url, dbName string, loc *time.Location) (*Storage, error) {
	const op = "storage.mongo.New"
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{
		client: client,
		db:     client.Database(dbName),
		loc:    loc,
	}, nil
}

// Close разрывает соединение с mongodb.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Upload вставляет данные в коллекцию: один документ (структура или map)
// через insert-one, срез документов — через insert-many.
func (s *Storage) Upload(ctx context.Context, collection string, data any) error {
	const op = "storage.mongo.Upload"
	if collection == "" {
		return fmt.Errorf("%s: %w: collection name required", op, ErrMissingAttribute)
	}
	if data == nil {
		return fmt.Errorf("%s: %w: data required", op, ErrMissingAttribute)
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return fmt.Errorf("%s: %w: data required", op, ErrMissingAttribute)
		}
		docs := make([]any, rv.Len())
		for i := range docs {
			docs[i] = rv.Index(i).Interface()
		}
		if _, err := s.db.Collection(collection).InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	case reflect.Struct, reflect.Map:
		if _, err := s.db.Collection(collection).InsertOne(ctx, rv.Interface()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	default:
		return fmt.Errorf("%s: %w: expected a struct, map or slice for 'data' but received a %s",
			op, ErrTypeMismatch, rv.Kind())
	}
	return nil
}

// Query находит первый документ по фильтру и декодирует его в result.
// Пустой фильтр означает первый документ коллекции.
func (s *Storage) Query(ctx context.Context, collection string, filter bson.M, result any) error {
	const op = "storage.mongo.Query"
	if collection == "" {
		return fmt.Errorf("%s: %w: collection name required", op, ErrMissingAttribute)
	}
	if filter == nil {
		filter = bson.M{}
	}
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// QueryAll находит все документы по фильтру и декодирует их в results
// (указатель на срез). Отсутствие фильтра означает полный проход коллекции.
func (s *Storage) QueryAll(ctx context.Context, collection string, filter bson.M, results any) error {
	const op = "storage.mongo.QueryAll"
	if collection == "" {
		return fmt.Errorf("%s: %w: collection name required", op, ErrMissingAttribute)
	}
	if filter == nil {
		filter = bson.M{}
	}
	cursor, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := cursor.All(ctx, results); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Update выполняет $set перечисленных полей у документов, подходящих под
// фильтр: меняются только переданные поля, остальные остаются нетронутыми.
// Каждое обновление дополнительно штампуется updated_at. Возвращает число
// совпавших документов; bulk переключает обновление первого совпадения на
// обновление всех.
func (s *Storage) Update(ctx context.Context, collection string, filter bson.M, fields map[string]any, bulk bool) (int64, error) {
	const op = "storage.mongo.Update"
	if collection == "" {
		return 0, fmt.Errorf("%s: %w: collection name required", op, ErrMissingAttribute)
	}
	if len(filter) == 0 {
		return 0, fmt.Errorf("%s: %w: filter required", op, ErrMissingAttribute)
	}
	if len(fields) == 0 {
		return 0, fmt.Errorf("%s: %w: data required", op, ErrMissingAttribute)
	}

	set := make(bson.M, len(fields)+1)
	for k, v := range fields {
		set[k] = v
	}
	set["updated_at"] = timestamp.Now(s.loc)
	update := bson.M{"$set": set}

	var (
		result *mongo.UpdateResult
		err    error
	)
	if bulk {
		result, err = s.db.Collection(collection).UpdateMany(ctx, filter, update)
	} else {
		result, err = s.db.Collection(collection).UpdateOne(ctx, filter, update)
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return result.MatchedCount, nil
}

// Delete удаляет ровно один документ по фильтру и возвращает число удалённых.
func (s *Storage) Delete(ctx context.Context, collection string, filter bson.M) (int64, error) {
	const op = "storage.mongo.Delete"
	if collection == "" {
		return 0, fmt.Errorf("%s: %w: collection name required", op, ErrMissingAttribute)
	}
	if len(filter) == 0 {
		return 0, fmt.Errorf("%s: %w: filter required", op, ErrMissingAttribute)
	}
	result, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return result.DeletedCount, nil
}

// IsDuplicateKey сообщает, вызвана ли ошибка нарушением уникального индекса.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
