package redisdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// ErrNotificationNotFound индекс уведомления выходит за пределы списка.
var ErrNotificationNotFound = errors.New("notification not found")

// maxNotifications максимум хранимых уведомлений на пользователя.
const maxNotifications = 100

func notificationsKey(userID string) string {
	return "notifications:" + userID
}

// AddNotification добавляет уведомление в начало списка получателя
// и обрезает список до последних 100 записей.
func (s *Store) AddNotification(ctx context.Context, userID string, n models.Notification) error {
	const op = "redisdb.AddNotification"
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	key := notificationsKey(userID)
	if err := s.Db.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.LTrim(ctx, key, 0, maxNotifications-1).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Notifications возвращает уведомления пользователя, новые первыми.
func (s *Store) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	const op = "redisdb.Notifications"
	raw, err := s.Db.LRange(ctx, notificationsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	notifications := make([]models.Notification, 0, len(raw))
	for _, item := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// MarkNotificationRead помечает уведомление прочитанным по его позиции
// в списке (0 — самое новое).
func (s *Store) MarkNotificationRead(ctx context.Context, userID string, index int) error {
	const op = "redisdb.MarkNotificationRead"
	key := notificationsKey(userID)
	raw, err := s.Db.LIndex(ctx, key, int64(index)).Result()
	if err == redis.Nil {
		return fmt.Errorf("%s: %w", op, ErrNotificationNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	var n models.Notification
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n.Read = true
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.LSet(ctx, key, int64(index), data).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
