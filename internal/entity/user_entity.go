package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a reference to an identity owned by the external auth subsystem.
// The messaging core stores ids and display fields only, never credentials.
type User struct {
	Id        uuid.UUID
	Username  string
	Email     string
	FullName  string
	CreatedAt time.Time
}
