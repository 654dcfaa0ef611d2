// Package mongodb реализует хранилище пользователей на MongoDB.
//
// Идентификатор пользователя — ObjectID, назначаемый при вставке.
// Уникальность email и mobile обеспечивают индексы, которые создаются миграциями.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const usersCollection = "users"

// Storage держит клиент MongoDB (с собственным пулом соединений)
// и коллекцию пользователей.
type Storage struct {
	client *mongo.Client
	users  *mongo.Collection
}

// New подключается к MongoDB и проверяет соединение.
func New(ctx context.Context, uri, database string) (*Storage, error) {
	const op = "storage.mongodb.New"

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		client: client,
		users:  client.Database(database).Collection(usersCollection),
	}, nil
}

// Ping проверяет доступность сервера.
func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close разрывает соединение.
func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
