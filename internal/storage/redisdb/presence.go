package redisdb

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// onlineUsersKey сортированное множество онлайн-пользователей,
// score — unix-время последнего heartbeat.
const onlineUsersKey = "online_users"

// Heartbeat отмечает пользователя онлайн, обновляя время последнего сигнала.
// Пользователь, переставший слать heartbeat, выпадает из выборки по
// истечении onlineTTL, так что некорректное отключение не оставляет его
// "онлайн" навсегда.
func (s *Store) Heartbeat(ctx context.Context, userID string) error {
	const op = "redisdb.Heartbeat"
	member := redis.Z{Score: float64(time.Now().Unix()), Member: userID}
	if err := s.Db.ZAdd(ctx, onlineUsersKey, member).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetOffline явно убирает пользователя из онлайн-множества.
func (s *Store) SetOffline(ctx context.Context, userID string) error {
	const op = "redisdb.SetOffline"
	if err := s.Db.ZRem(ctx, onlineUsersKey, userID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OnlineUsers возвращает id пользователей с heartbeat в пределах TTL,
// попутно удаляя устаревшие записи.
func (s *Store) OnlineUsers(ctx context.Context) ([]string, error) {
	const op = "redisdb.OnlineUsers"
	cutoff := time.Now().Add(-s.onlineTTL).Unix()
	if err := s.Db.ZRemRangeByScore(ctx, onlineUsersKey,
		"-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	members, err := s.Db.ZRange(ctx, onlineUsersKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return members, nil
}

// IsOnline проверяет, был ли heartbeat пользователя в пределах TTL.
func (s *Store) IsOnline(ctx context.Context, userID string) (bool, error) {
	const op = "redisdb.IsOnline"
	score, err := s.Db.ZScore(ctx, onlineUsersKey, userID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	cutoff := time.Now().Add(-s.onlineTTL).Unix()
	return int64(score) >= cutoff, nil
}
