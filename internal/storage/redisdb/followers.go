package redisdb

import (
	"context"
	"fmt"
)

func followersKey(userID string) string {
	return "followers:" + userID
}

// AddFollower добавляет followerID в множество подписчиков followedID.
// Множество — это кэш-зеркало графа подписок для быстрых проверок статуса
// и счётчика подписчиков; источник истины остаётся в PostgreSQL.
func (s *Store) AddFollower(ctx context.Context, followedID, followerID string) error {
	const op = "redisdb.AddFollower"
	if err := s.Db.SAdd(ctx, followersKey(followedID), followerID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveFollower убирает followerID из множества подписчиков followedID.
func (s *Store) RemoveFollower(ctx context.Context, followedID, followerID string) error {
	const op = "redisdb.RemoveFollower"
	if err := s.Db.SRem(ctx, followersKey(followedID), followerID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// IsFollower проверяет, подписан ли followerID на followedID.
func (s *Store) IsFollower(ctx context.Context, followedID, followerID string) (bool, error) {
	const op = "redisdb.IsFollower"
	ok, err := s.Db.SIsMember(ctx, followersKey(followedID), followerID).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// FollowersCount возвращает размер множества подписчиков.
func (s *Store) FollowersCount(ctx context.Context, userID string) (int64, error) {
	const op = "redisdb.FollowersCount"
	count, err := s.Db.SCard(ctx, followersKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
