package entity

import (
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app notification row. MessageId is nil for system
// notifications that are not tied to a message.
type Notification struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	MessageId        *uuid.UUID
	NotificationType string
	Title            string
	Content          string
	Metadata         map[string]interface{}
	IsRead           bool
	CreatedAt        time.Time
}
