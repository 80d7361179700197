package models

import "time"

// FollowEvent событие подписки, публикуемое в брокер для воркера уведомлений.
type FollowEvent struct {
	FollowerID string    `json:"follower_id"`
	FollowedID string    `json:"followed_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// MessageEvent событие отправки личного сообщения.
type MessageEvent struct {
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Timestamp  time.Time `json:"timestamp"`
}
