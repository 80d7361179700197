// Package redisdb реализует хранилище уведомлений, личных сообщений,
// голосов, онлайн-присутствия и кэша чтения поверх примитивов Redis.
//
// Списки уведомлений и переписок ограничены по длине (LTrim), новые
// записи хранятся в начале списка. Кэш чтения сериализует значения в
// JSON и сопровождает их TTL.
package redisdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julioo07/tarea-programada-1-BD/internal/config"
)

// Store инкапсулирует клиент Redis и настройки присутствия.
type Store struct {
	Db        *redis.Client
	onlineTTL time.Duration
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Store, error) {
	const op = "redisdb.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{Db: db, onlineTTL: cfg.OnlineTTL}, nil
}

// Get пытается получить значение из кеша по ключу.
func (s *Store) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "redisdb.Get"
	val, err := s.Db.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal([]byte(val), result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение в кеш с временем жизни.
func (s *Store) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Db.Set(ctx, key, jsonData, expiration).Err()
}

// Invalidate удаляет значение из кеша по ключу.
func (s *Store) Invalidate(ctx context.Context, key string) error {
	return s.Db.Del(ctx, key).Err()
}

// InvalidatePattern удаляет все ключи, попадающие под glob-шаблон,
// и возвращает число удалённых ключей.
func (s *Store) InvalidatePattern(ctx context.Context, pattern string) (int, error) {
	const op = "redisdb.InvalidatePattern"
	keys, err := s.Db.Keys(ctx, pattern).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}
	if err := s.Db.Del(ctx, keys...).Err(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return len(keys), nil
}
