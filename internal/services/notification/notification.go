// Package notification содержит бизнес-логику уведомлений, онлайн-присутствия
// и служебных операций над кешем.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// NotificationStore хранит уведомления, присутствие и диагностику кеша.
type NotificationStore interface {
	Notifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID string, index int) error
	Heartbeat(ctx context.Context, userID string) error
	SetOffline(ctx context.Context, userID string) error
	OnlineUsers(ctx context.Context) ([]string, error)
	IsOnline(ctx context.Context, userID string) (bool, error)
	Stats(ctx context.Context) (map[string]int, error)
	InvalidatePattern(ctx context.Context, pattern string) (int, error)
}

// Service реализует бизнес-логику уведомлений и присутствия.
type Service struct {
	store NotificationStore
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store NotificationStore, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// Notifications возвращает уведомления пользователя, свежие первыми.
func (s *Service) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	const op = "notification.Notifications"

	list, err := s.store.Notifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

// MarkRead отмечает уведомление прочитанным по его позиции в списке.
func (s *Service) MarkRead(ctx context.Context, userID string, index int) error {
	const op = "notification.MarkRead"

	if err := s.store.MarkNotificationRead(ctx, userID, index); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Heartbeat отмечает пользователя онлайн.
func (s *Service) Heartbeat(ctx context.Context, userID string) error {
	const op = "notification.Heartbeat"

	if err := s.store.Heartbeat(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetOffline явно отмечает пользователя оффлайн.
func (s *Service) SetOffline(ctx context.Context, userID string) error {
	const op = "notification.SetOffline"

	if err := s.store.SetOffline(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// OnlineUsers возвращает пользователей с активным heartbeat.
func (s *Service) OnlineUsers(ctx context.Context) ([]string, error) {
	const op = "notification.OnlineUsers"

	users, err := s.store.OnlineUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// IsOnline проверяет активность heartbeat пользователя.
func (s *Service) IsOnline(ctx context.Context, userID string) (bool, error) {
	const op = "notification.IsOnline"

	online, err := s.store.IsOnline(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return online, nil
}

// CacheStats возвращает число ключей по известным шаблонам.
func (s *Service) CacheStats(ctx context.Context) (map[string]int, error) {
	const op = "notification.CacheStats"

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// InvalidateCache удаляет ключи по glob-шаблону и возвращает их число.
func (s *Service) InvalidateCache(ctx context.Context, pattern string) (int, error) {
	const op = "notification.InvalidateCache"

	removed, err := s.store.InvalidatePattern(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("invalidated cache keys",
		slog.String("pattern", pattern), slog.Int("count", removed))
	return removed, nil
}
