package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendMessageRequest struct {
	ReceiverId      uuid.UUID  `json:"receiver_id" validate:"required"`
	Content         string     `json:"content" validate:"required"`
	ParentMessageId *uuid.UUID `json:"parent_message_id"`
}

type SendMessageResponse struct {
	Id uuid.UUID `json:"id"`
}

type EditMessageRequest struct {
	Id      uuid.UUID
	Content string `json:"content" validate:"required"`
}

// Version is 0 when the edit changed nothing and no snapshot was taken.
type EditMessageResponse struct {
	Id      uuid.UUID `json:"id"`
	Edited  bool      `json:"edited"`
	Version int       `json:"version"`
}

type MessageResponse struct {
	Id              uuid.UUID  `json:"id"`
	SenderId        uuid.UUID  `json:"sender_id"`
	SenderUsername  string     `json:"sender_username,omitempty"`
	ReceiverId      uuid.UUID  `json:"receiver_id"`
	ParentMessageId *uuid.UUID `json:"parent_message_id,omitempty"`
	Content         string     `json:"content"`
	Timestamp       time.Time  `json:"timestamp"`
	IsRead          bool       `json:"is_read"`
	Edited          bool       `json:"edited"`
	EditedAt        *time.Time `json:"edited_at,omitempty"`
}

type MarkReadRequest struct {
	MessageIds []uuid.UUID `json:"message_ids"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MessageHistoryResponse struct {
	Version    int       `json:"version"`
	OldContent string    `json:"old_content"`
	EditedById uuid.UUID `json:"edited_by_id"`
	EditedAt   time.Time `json:"edited_at"`
}

// PublishNotificationMessage is the payload handed to the internal event
// bus after a notification row is committed; the consumer resolves it and
// pushes over WebSocket.
type PublishNotificationMessage struct {
	NotificationId uuid.UUID `json:"notification_id"`
	UserId         uuid.UUID `json:"user_id"`
}
