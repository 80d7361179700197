package models

import "time"

// Message сообщение в переписке двух пользователей.
// Хранится в списке, ограниченном последними 1000 записями на пару.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}

// ConversationSummary сводка по переписке для списка диалогов пользователя.
// LastMessage равен nil, если переписка пуста.
type ConversationSummary struct {
	OtherUserID string   `json:"otherUserId"`
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int      `json:"unreadCount"`
}
