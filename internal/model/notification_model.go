package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification stores in-app notifications. MessageId is nullable: system
// notifications are not tied to a message and survive only until their
// target user is deleted.
type Notification struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index:idx_notifications_user_created,priority:1;index:idx_notifications_user_unread,priority:1"`
	User             *User          `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
	MessageId        *uuid.UUID     `gorm:"type:uuid;index"`
	Message          *Message       `gorm:"foreignKey:MessageId;constraint:OnDelete:CASCADE"`
	NotificationType string         `gorm:"type:varchar(20);not null;default:'message'"`
	Title            string         `gorm:"type:varchar(200);not null"`
	Content          string         `gorm:"type:text;not null"`
	Metadata         datatypes.JSON `gorm:"type:jsonb"`
	IsRead           bool           `gorm:"default:false;index:idx_notifications_user_unread,priority:2"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index:idx_notifications_user_created,priority:2"`
}

func (Notification) TableName() string {
	return "notifications"
}
