package models

import "time"

// Notification представляет модель уведомления пользователя.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// UnreadCount представляет количество непрочитанных уведомлений пользователя.
type UnreadCount struct {
	Unread int `json:"unread"`
}
