// Package messaging содержит бизнес-логику личных сообщений: отправку,
// чтение переписки, отметку прочтения и сводку диалогов пользователя.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/julioo07/tarea-programada-1-BD/internal/lib/sl"
	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// MessageStore хранит переписки и индекс собеседников.
type MessageStore interface {
	PushMessage(ctx context.Context, msg models.Message) error
	Conversation(ctx context.Context, user1ID, user2ID string) ([]models.Message, error)
	MarkMessagesRead(ctx context.Context, readerID, otherID string) error
	ConversationPartners(ctx context.Context, userID string) ([]string, error)
	LastMessage(ctx context.Context, user1ID, user2ID string) (*models.Message, error)
	UnreadCount(ctx context.Context, readerID, otherID string) (int, error)
}

// EventPublisher отправляет доменные события в очередь.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// Service реализует бизнес-логику личных сообщений.
type Service struct {
	store     MessageStore
	publisher EventPublisher
	log       *slog.Logger
}

// New создает новый экземпляр Service. Publisher может быть nil,
// тогда события сообщений не публикуются.
func New(store MessageStore, publisher EventPublisher, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		log:       log,
	}
}

// Send сохраняет сообщение с временным id и публикует событие.
func (s *Service) Send(ctx context.Context, senderID, receiverID, text string) (*models.Message, error) {
	const op = "messaging.Send"

	now := time.Now().UTC()
	msg := models.Message{
		ID:         strconv.FormatInt(now.UnixMilli(), 10),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    text,
		Timestamp:  now,
	}
	if err := s.store.PushMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("sent message",
		slog.String("sender", senderID),
		slog.String("receiver", receiverID))

	if s.publisher != nil {
		event := models.MessageEvent{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Timestamp:  now,
		}
		if err := s.publisher.Publish("message", event); err != nil {
			s.log.Warn("failed to publish message event", sl.Err(err))
		}
	}
	return &msg, nil
}

// Conversation возвращает переписку двух пользователей в хронологическом
// порядке и отмечает входящие сообщения вызывающего прочитанными.
func (s *Service) Conversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	const op = "messaging.Conversation"

	msgs, err := s.store.Conversation(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.store.MarkMessagesRead(ctx, userID, otherID); err != nil {
		s.log.Warn("failed to mark messages read", sl.Err(err))
	}
	return msgs, nil
}

// MarkRead отмечает прочитанными входящие сообщения вызывающего от собеседника.
func (s *Service) MarkRead(ctx context.Context, userID, otherID string) error {
	const op = "messaging.MarkRead"

	if err := s.store.MarkMessagesRead(ctx, userID, otherID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Conversations строит сводку диалогов пользователя: собеседник,
// последнее сообщение и число непрочитанных.
func (s *Service) Conversations(ctx context.Context, userID string) ([]models.ConversationSummary, error) {
	const op = "messaging.Conversations"

	partners, err := s.store.ConversationPartners(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	summaries := make([]models.ConversationSummary, 0, len(partners))
	for _, partner := range partners {
		last, err := s.store.LastMessage(ctx, userID, partner)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		unread, err := s.store.UnreadCount(ctx, userID, partner)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		summaries = append(summaries, models.ConversationSummary{
			OtherUserID: partner,
			LastMessage: last,
			UnreadCount: unread,
		})
	}
	return summaries, nil
}
