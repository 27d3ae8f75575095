package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id              uuid.UUID
	Seq             int64 // insertion order, tie-break for equal timestamps
	SenderId        uuid.UUID
	ReceiverId      uuid.UUID
	ParentMessageId *uuid.UUID
	Content         string
	Timestamp       time.Time
	IsRead          bool
	Edited          bool
	EditedAt        *time.Time

	// Populated by repositories when the query preloads it.
	Sender *User
}

// IsParticipant reports whether the given user is the sender or receiver.
// Every per-message permission check goes through this.
func (m *Message) IsParticipant(userId uuid.UUID) bool {
	return m.SenderId == userId || m.ReceiverId == userId
}

// MessageHistory is one append-only snapshot of a message's content taken
// immediately before an edit overwrote it. Versions start at 1 and are
// contiguous per message.
type MessageHistory struct {
	Id         uuid.UUID
	MessageId  uuid.UUID
	OldContent string
	EditedById uuid.UUID
	EditedAt   time.Time
	Version    int
}

// ThreadNode is one message in a reconstructed reply tree. Depth 0 is a
// direct reply to the thread root; replies are ordered by (timestamp, seq).
type ThreadNode struct {
	Message *Message
	Depth   int
	Replies []*ThreadNode
}
