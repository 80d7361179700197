package postgres

import (
	"context"
	"fmt"
)

// CreateFollow идемпотентно создаёт подписку follower -> followed.
// Возвращает true, если связь была создана этим вызовом, и false,
// если она уже существовала. Несуществующий followed даёт ErrUserNotFound.
func (s *Storage) CreateFollow(ctx context.Context, followerUID, followedUID string) (bool, error) {
	const op = "postgres.CreateFollow"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO follows (follower_uid, followed_uid)
			  VALUES ($1, $2)
			  ON CONFLICT (follower_uid, followed_uid) DO NOTHING`
	result, err := s.DB.ExecContext(ctx, query, followerUID, followedUID)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return false, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected > 0, nil
}

// DeleteFollow удаляет подписку, если она есть; отсутствие связи не ошибка.
func (s *Storage) DeleteFollow(ctx context.Context, followerUID, followedUID string) (int, error) {
	const op = "postgres.DeleteFollow"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM follows WHERE follower_uid = $1 AND followed_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, followerUID, followedUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FollowExists проверяет наличие подписки follower -> followed.
func (s *Storage) FollowExists(ctx context.Context, followerUID, followedUID string) (bool, error) {
	const op = "postgres.FollowExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM follows
			      WHERE follower_uid = $1 AND followed_uid = $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, followerUID, followedUID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
