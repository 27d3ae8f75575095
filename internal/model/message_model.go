package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Seq             int64      `gorm:"autoIncrement;uniqueIndex"`
	SenderId        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Sender          *User      `gorm:"foreignKey:SenderId;constraint:OnDelete:CASCADE"`
	ReceiverId      uuid.UUID  `gorm:"type:uuid;not null;index:idx_messages_receiver_unread,priority:1"`
	Receiver        *User      `gorm:"foreignKey:ReceiverId;constraint:OnDelete:CASCADE"`
	ParentMessageId *uuid.UUID `gorm:"type:uuid;index"`
	ParentMessage   *Message   `gorm:"foreignKey:ParentMessageId;constraint:OnDelete:CASCADE"`
	Content         string     `gorm:"type:text;not null"`
	Timestamp       time.Time  `gorm:"autoCreateTime;index"`
	IsRead          bool       `gorm:"default:false;index:idx_messages_receiver_unread,priority:2"`
	Edited          bool       `gorm:"default:false"`
	EditedAt        *time.Time
}

func (Message) TableName() string {
	return "messages"
}

// MessageHistory is append-only. The composite unique index on
// (message_id, version) is the safety net for concurrent edits: a lost race
// surfaces as a uniqueness violation instead of silently overwriting.
type MessageHistory struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_message_histories_message_version,priority:1;index:idx_message_histories_message_edited,priority:1"`
	Message    *Message  `gorm:"foreignKey:MessageId;constraint:OnDelete:CASCADE"`
	OldContent string    `gorm:"type:text;not null"`
	EditedById uuid.UUID `gorm:"type:uuid;not null;index"`
	EditedBy   *User     `gorm:"foreignKey:EditedById;constraint:OnDelete:CASCADE"`
	EditedAt   time.Time `gorm:"autoCreateTime;index:idx_message_histories_message_edited,priority:2"`
	Version    int       `gorm:"not null;uniqueIndex:idx_message_histories_message_version,priority:2;check:version > 0"`
}

func (MessageHistory) TableName() string {
	return "message_histories"
}
