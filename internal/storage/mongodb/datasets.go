package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// Insert добавляет новый документ датасета в коллекцию.
func (s *Store) Insert(ctx context.Context, dataset models.Dataset) error {
	const op = "mongodb.Insert"
	if _, err := s.collection.InsertOne(ctx, dataset); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindByID возвращает датасет по id_dataset или ErrDatasetNotFound.
func (s *Store) FindByID(ctx context.Context, idDataset string) (*models.Dataset, error) {
	const op = "mongodb.FindByID"
	var dataset models.Dataset
	err := s.collection.FindOne(ctx, bson.M{"id_dataset": idDataset}).Decode(&dataset)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrDatasetNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &dataset, nil
}

// FindAll возвращает все датасеты, новые первыми.
func (s *Store) FindAll(ctx context.Context) ([]*models.Dataset, error) {
	const op = "mongodb.FindAll"
	opts := options.Find().SetSort(bson.M{"fecha_inclusion": -1})
	return s.find(ctx, op, bson.M{}, opts)
}

// FindByOwner возвращает датасеты, принадлежащие пользователю.
func (s *Store) FindByOwner(ctx context.Context, idUsuario string) ([]*models.Dataset, error) {
	const op = "mongodb.FindByOwner"
	opts := options.Find().SetSort(bson.M{"fecha_inclusion": -1})
	return s.find(ctx, op, bson.M{"id_usuario": idUsuario}, opts)
}

// SearchByName ищет датасеты по подстроке имени без учёта регистра.
func (s *Store) SearchByName(ctx context.Context, nombre string) ([]*models.Dataset, error) {
	const op = "mongodb.SearchByName"
	filter := bson.M{"nombre": bson.M{"$regex": nombre, "$options": "i"}}
	opts := options.Find().SetSort(bson.M{"fecha_inclusion": -1})
	return s.find(ctx, op, filter, opts)
}

func (s *Store) find(ctx context.Context, op string, filter bson.M, opts *options.FindOptionsBuilder) ([]*models.Dataset, error) {
	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var datasets []*models.Dataset
	if err = cursor.All(ctx, &datasets); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return datasets, nil
}

// Update частично обновляет поля датасета и обязательно освежает
// fecha_actualizacion. Возвращает обновлённый документ.
func (s *Store) Update(ctx context.Context, idDataset string, upd models.DatasetUpdate) (*models.Dataset, error) {
	const op = "mongodb.Update"

	set := bson.M{"fecha_actualizacion": time.Now().UTC()}
	if upd.Nombre != nil {
		set["nombre"] = *upd.Nombre
	}
	if upd.Descripcion != nil {
		set["descripcion"] = *upd.Descripcion
	}
	if upd.Estado != nil {
		set["estado"] = *upd.Estado
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Dataset
	err := s.collection.FindOneAndUpdate(ctx,
		bson.M{"id_dataset": idDataset},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%s: %w", op, ErrDatasetNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &updated, nil
}
