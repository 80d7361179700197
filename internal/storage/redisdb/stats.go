package redisdb

import (
	"context"
	"fmt"
)

// statsPatterns фиксированный набор шаблонов диагностики ключей.
var statsPatterns = []string{
	"datasets:*",
	"user_datasets:*",
	"user_votes:*",
	"notifications:*",
	"followers:*",
	"conversation:*",
	"conversations:*",
	"online_users",
}

// Stats возвращает число ключей на каждый известный шаблон.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	const op = "redisdb.Stats"
	stats := make(map[string]int, len(statsPatterns))
	for _, pattern := range statsPatterns {
		keys, err := s.Db.Keys(ctx, pattern).Result()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats[pattern] = len(keys)
	}
	return stats, nil
}
