package model

import (
	"time"

	"github.com/google/uuid"
)

// User mirrors the identity row managed by the auth subsystem. It exists
// here so that every message/notification/history FK can cascade on delete.
// No soft delete: account removal must physically drop dependent rows.
type User struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
