package models

import "time"

// Message представляет модель сообщения в чате контракта.
type Message struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contractId"`
	SenderID   string    `json:"senderId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// MessageRequest представляет структуру запроса для отправки сообщения.
type MessageRequest struct {
	SenderUsername string `json:"senderUsername"`
	Content        string `json:"content"`
}
