package models

import "time"

// NotificationNewFollower тип уведомления о новом подписчике.
const NotificationNewFollower = "new_follower"

// Notification уведомление в списке получателя.
// Списки ограничены последними 100 записями на пользователя.
type Notification struct {
	Type       string    `json:"type"`
	FollowerID string    `json:"followerId,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Read       bool      `json:"read"`
}
