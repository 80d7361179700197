// Package social содержит бизнес-логику социального графа: поиск пользователей,
// подписки с зеркалированием в Redis и публикацией событий для рассыльщика.
package social

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// ErrSelfFollow возвращается при попытке подписаться на самого себя.
var ErrSelfFollow = errors.New("cannot follow yourself")

// GraphRepository определяет методы для работы с пользователями и подписками.
type GraphRepository interface {
	// ListUsers возвращает всех пользователей кроме вызывающего с фильтром по подстроке.
	ListUsers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error)
	// ListFollowers возвращает подписчиков вызывающего с фильтром по подстроке.
	ListFollowers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error)
	// CreateFollow идемпотентно создаёт подписку, created=false при повторе.
	CreateFollow(ctx context.Context, followerUID, followedUID string) (bool, error)
	// DeleteFollow удаляет подписку и возвращает число удалённых рёбер.
	DeleteFollow(ctx context.Context, followerUID, followedUID string) (int, error)
	// FollowExists проверяет наличие подписки.
	FollowExists(ctx context.Context, followerUID, followedUID string) (bool, error)
}

// FollowCache зеркалирует подписки и уведомления в Redis.
type FollowCache interface {
	AddFollower(ctx context.Context, followedID, followerID string) error
	RemoveFollower(ctx context.Context, followedID, followerID string) error
	IsFollower(ctx context.Context, followedID, followerID string) (bool, error)
	FollowersCount(ctx context.Context, userID string) (int64, error)
	AddNotification(ctx context.Context, userID string, n models.Notification) error
}

// EventPublisher отправляет доменные события в очередь.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует бизнес-логику социального графа.
type Service struct {
	repo      GraphRepository
	cache     FollowCache
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service. Publisher может быть nil,
// тогда события подписок не публикуются.
func New(repo GraphRepository, cache FollowCache, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// ListUsers возвращает пользователей, подходящих под запрос, без вызывающего.
func (s *Service) ListUsers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error) {
	const op = "social.ListUsers"

	users, err := s.repo.ListUsers(ctx, meUID, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// ListFollowers возвращает подписчиков вызывающего, подходящих под запрос.
func (s *Service) ListFollowers(ctx context.Context, meUID, q string) ([]*models.UserSummary, error) {
	const op = "social.ListFollowers"

	followers, err := s.repo.ListFollowers(ctx, meUID, q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return followers, nil
}

// Follow идемпотентно создаёт подписку. Первый вызов зеркалирует подписчика
// в Redis, кладёт уведомление получателю и публикует событие для рассыльщика,
// повторные вызовы ничего не меняют.
func (s *Service) Follow(ctx context.Context, followerUID, targetUID string) error {
	const op = "social.Follow"

	if followerUID == targetUID {
		return fmt.Errorf("%s: %w", op, ErrSelfFollow)
	}

	created, err := s.repo.CreateFollow(ctx, followerUID, targetUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !created {
		return nil
	}

	s.log.Info("created follow",
		slog.String("follower", followerUID),
		slog.String("followed", targetUID))

	// Зеркало и уведомление не должны ронять уже созданную подписку.
	if err := s.cache.AddFollower(ctx, targetUID, followerUID); err != nil {
		s.log.Warn("failed to mirror follower to cache", sl.Err(err))
	}
	notification := models.Notification{
		Type:       models.NotificationNewFollower,
		FollowerID: followerUID,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.cache.AddNotification(ctx, targetUID, notification); err != nil {
		s.log.Warn("failed to store follow notification", sl.Err(err))
	}

	if s.publisher != nil {
		event := models.FollowEvent{
			FollowerID: followerUID,
			FollowedID: targetUID,
			Timestamp:  time.Now().UTC(),
		}
		if err := s.publisher.Publish("follow", event); err != nil {
			s.log.Warn("failed to publish follow event", sl.Err(err))
		}
	}
	return nil
}

// Unfollow удаляет подписку. Отписка от неподписанного пользователя не ошибка.
func (s *Service) Unfollow(ctx context.Context, followerUID, targetUID string) error {
	const op = "social.Unfollow"

	removed, err := s.repo.DeleteFollow(ctx, followerUID, targetUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if removed == 0 {
		return nil
	}

	if err := s.cache.RemoveFollower(ctx, targetUID, followerUID); err != nil {
		s.log.Warn("failed to remove follower from cache", sl.Err(err))
	}
	return nil
}

// FollowStatus сообщает, подписан ли вызывающий на пользователя.
// Положительный ответ зеркала в Redis отвечает без похода в PostgreSQL,
// отсутствие в зеркале перепроверяется по источнику истины.
func (s *Service) FollowStatus(ctx context.Context, followerUID, targetUID string) (bool, error) {
	const op = "social.FollowStatus"

	mirrored, err := s.cache.IsFollower(ctx, targetUID, followerUID)
	if err != nil {
		s.log.Warn("failed to check follower mirror", sl.Err(err))
	} else if mirrored {
		return true, nil
	}

	following, err := s.repo.FollowExists(ctx, followerUID, targetUID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return following, nil
}

// FollowersCount возвращает число подписчиков пользователя по зеркалу в Redis.
func (s *Service) FollowersCount(ctx context.Context, userID string) (int64, error) {
	const op = "social.FollowersCount"

	count, err := s.cache.FollowersCount(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
