// Package mongodb реализует каталог датасетов поверх MongoDB.
// Документы хранятся в коллекции datasets с испанской схемой полей,
// поиск по имени выполняется регистронезависимым регулярным выражением.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/julioo07/tarea-programada-1-BD/internal/config"
)

// ErrDatasetNotFound датасет с указанным идентификатором отсутствует.
var ErrDatasetNotFound = errors.New("dataset not found")

// Store инкапсулирует клиент MongoDB и коллекцию датасетов.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// New подключается к MongoDB и проверяет доступность сервера.
func New(ctx context.Context, cfg config.MongoConnection) (*Store, error) {
	const op = "mongodb.New"

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(cfg.MongoTimeout)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.MongoTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.MongoDatabase).Collection("datasets"),
	}, nil
}

// Close разрывает соединение с MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
