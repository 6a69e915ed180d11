package domain

import "time"

// ChatMessage is one persisted chat message between the recipient of a
// blood request and its assigned donor. Messages are append-only: they
// are created through the gateway's send path and never mutated.
type ChatMessage struct {
	ID          string    `json:"id"`
	RequestID   string    `json:"request_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Body        string    `json:"message"`
	CreatedAt   time.Time `json:"timestamp"`
}

// ChatMessageModel is the GORM model for the chat_messages table.
type ChatMessageModel struct {
	ID          string    `gorm:"type:varchar(26);primaryKey"`
	RequestID   string    `gorm:"type:varchar(36);not null;index:idx_messages_request"`
	SenderID    string    `gorm:"type:varchar(36);not null"`
	RecipientID string    `gorm:"type:varchar(36);not null"`
	Body        string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"index:idx_messages_request"`
}

// TableName specifies the table name for ChatMessageModel.
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}

// ToDomain converts ChatMessageModel to domain ChatMessage.
func (m *ChatMessageModel) ToDomain() *ChatMessage {
	return &ChatMessage{
		ID:          m.ID,
		RequestID:   m.RequestID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		CreatedAt:   m.CreatedAt,
	}
}

// ChatMessageToModel converts domain ChatMessage to ChatMessageModel.
func ChatMessageToModel(msg *ChatMessage) *ChatMessageModel {
	return &ChatMessageModel{
		ID:          msg.ID,
		RequestID:   msg.RequestID,
		SenderID:    msg.SenderID,
		RecipientID: msg.RecipientID,
		Body:        msg.Body,
		CreatedAt:   msg.CreatedAt,
	}
}
