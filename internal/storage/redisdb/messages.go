package redisdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/julioo07/tarea-programada-1-BD/internal/models"
)

// maxConversationMessages максимум хранимых сообщений на пару пользователей.
const maxConversationMessages = 1000

// ConversationID возвращает канонический идентификатор переписки:
// отсортированные id участников, соединённые через "_". Не зависит от
// порядка аргументов.
func ConversationID(user1ID, user2ID string) string {
	ids := []string{user1ID, user2ID}
	sort.Strings(ids)
	return ids[0] + "_" + ids[1]
}

func conversationKey(user1ID, user2ID string) string {
	return "conversation:" + ConversationID(user1ID, user2ID)
}

func conversationIndexKey(userID string) string {
	return "conversations:" + userID
}

// PushMessage кладёт сообщение в начало списка переписки, обрезает список
// до последних 1000 записей и поддерживает у обоих участников вторичный
// индекс собеседников (вместо сканирования пространства ключей).
func (s *Store) PushMessage(ctx context.Context, msg models.Message) error {
	const op = "redisdb.PushMessage"
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	key := conversationKey(msg.SenderID, msg.ReceiverID)
	if err := s.Db.LPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.LTrim(ctx, key, 0, maxConversationMessages-1).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.SAdd(ctx, conversationIndexKey(msg.SenderID), msg.ReceiverID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Db.SAdd(ctx, conversationIndexKey(msg.ReceiverID), msg.SenderID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Conversation возвращает переписку двух пользователей в хронологическом
// порядке (хранение — новые первыми, чтение разворачивает список).
func (s *Store) Conversation(ctx context.Context, user1ID, user2ID string) ([]models.Message, error) {
	const op = "redisdb.Conversation"
	raw, err := s.Db.LRange(ctx, conversationKey(user1ID, user2ID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	messages := make([]models.Message, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var msg models.Message
		if err := json.Unmarshal([]byte(raw[i]), &msg); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// MarkMessagesRead помечает прочитанными все сообщения переписки,
// адресованные readerID. Перезапись выполняется по позициям через LSet.
func (s *Store) MarkMessagesRead(ctx context.Context, readerID, otherID string) error {
	const op = "redisdb.MarkMessagesRead"
	key := conversationKey(readerID, otherID)
	raw, err := s.Db.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for i, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if msg.ReceiverID != readerID || msg.Read {
			continue
		}
		msg.Read = true
		data, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := s.Db.LSet(ctx, key, int64(i), data).Err(); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// ConversationPartners возвращает собеседников пользователя из
// вторичного индекса.
func (s *Store) ConversationPartners(ctx context.Context, userID string) ([]string, error) {
	const op = "redisdb.ConversationPartners"
	partners, err := s.Db.SMembers(ctx, conversationIndexKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return partners, nil
}

// LastMessage возвращает самое новое сообщение переписки или nil,
// если переписка пуста.
func (s *Store) LastMessage(ctx context.Context, user1ID, user2ID string) (*models.Message, error) {
	const op = "redisdb.LastMessage"
	raw, err := s.Db.LIndex(ctx, conversationKey(user1ID, user2ID), 0).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var msg models.Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &msg, nil
}

// UnreadCount считает непрочитанные сообщения, адресованные readerID,
// линейным проходом по переписке.
func (s *Store) UnreadCount(ctx context.Context, readerID, otherID string) (int, error) {
	const op = "redisdb.UnreadCount"
	raw, err := s.Db.LRange(ctx, conversationKey(readerID, otherID), 0, -1).Result()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count := 0
	for _, item := range raw {
		var msg models.Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		if msg.ReceiverID == readerID && !msg.Read {
			count++
		}
	}
	return count, nil
}
