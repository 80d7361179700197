package redisdb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

func votesKey(userID string) string {
	return "user_votes:" + userID
}

// SetVote сохраняет целочисленный голос пользователя за датасет.
func (s *Store) SetVote(ctx context.Context, userID, datasetID string, vote int) error {
	const op = "redisdb.SetVote"
	if err := s.Db.HSet(ctx, votesKey(userID), datasetID, strconv.Itoa(vote)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Vote возвращает голос пользователя за датасет; второй результат false,
// если голоса нет.
func (s *Store) Vote(ctx context.Context, userID, datasetID string) (int, bool, error) {
	const op = "redisdb.Vote"
	raw, err := s.Db.HGet(ctx, votesKey(userID), datasetID).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	vote, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return vote, true, nil
}

// Votes возвращает все голоса пользователя по id датасетов.
func (s *Store) Votes(ctx context.Context, userID string) (map[string]int, error) {
	const op = "redisdb.Votes"
	raw, err := s.Db.HGetAll(ctx, votesKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	votes := make(map[string]int, len(raw))
	for datasetID, value := range raw {
		vote, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		votes[datasetID] = vote
	}
	return votes, nil
}
