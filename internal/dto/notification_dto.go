package dto

import (
	"time"

	"github.com/google/uuid"
)

type NotificationResponse struct {
	Id               uuid.UUID              `json:"id"`
	MessageId        *uuid.UUID             `json:"message_id,omitempty"`
	NotificationType string                 `json:"notification_type"`
	Title            string                 `json:"title"`
	Content          string                 `json:"content"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
	IsRead           bool                   `json:"is_read"`
	CreatedAt        time.Time              `json:"created_at"`
}

type NotificationListResponse struct {
	Items []*NotificationResponse `json:"items"`
	Total int64                   `json:"total"`
}

type NotificationUnreadCountResponse struct {
	Count int64 `json:"count"`
}
