package memory

import (
	"sync"
	"time"

	"chat-messaging-be/internal/entity"

	"github.com/google/uuid"
)

// Store is a process-local stand-in for the database, used by service unit
// tests and local experiments. It reproduces the FK cascade semantics of
// the real schema: deleting a user or a message takes every dependent row
// with it.
type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*entity.User
	messages      map[uuid.UUID]*entity.Message
	histories     map[uuid.UUID]*entity.MessageHistory
	notifications map[uuid.UUID]*entity.Notification
	seq           int64
}

func NewStore() *Store {
	return &Store{
		users:         make(map[uuid.UUID]*entity.User),
		messages:      make(map[uuid.UUID]*entity.Message),
		histories:     make(map[uuid.UUID]*entity.MessageHistory),
		notifications: make(map[uuid.UUID]*entity.Notification),
	}
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

func ensureId(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}

func ensureTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// deleteMessageLocked removes a message plus its reply subtree, histories
// and notifications. Caller holds the write lock.
func (s *Store) deleteMessageLocked(id uuid.UUID) {
	if _, ok := s.messages[id]; !ok {
		return
	}
	delete(s.messages, id)

	for hid, h := range s.histories {
		if h.MessageId == id {
			delete(s.histories, hid)
		}
	}
	for nid, n := range s.notifications {
		if n.MessageId != nil && *n.MessageId == id {
			delete(s.notifications, nid)
		}
	}

	var replies []uuid.UUID
	for mid, m := range s.messages {
		if m.ParentMessageId != nil && *m.ParentMessageId == id {
			replies = append(replies, mid)
		}
	}
	for _, rid := range replies {
		s.deleteMessageLocked(rid)
	}
}

// deleteUserLocked removes the user and transitively everything the schema
// would cascade: messages on either side (with their subtrees), authored
// histories and targeted notifications.
func (s *Store) deleteUserLocked(id uuid.UUID) {
	delete(s.users, id)

	var owned []uuid.UUID
	for mid, m := range s.messages {
		if m.SenderId == id || m.ReceiverId == id {
			owned = append(owned, mid)
		}
	}
	for _, mid := range owned {
		s.deleteMessageLocked(mid)
	}

	for hid, h := range s.histories {
		if h.EditedById == id {
			delete(s.histories, hid)
		}
	}
	for nid, n := range s.notifications {
		if n.UserId == id {
			delete(s.notifications, nid)
		}
	}
}

func cloneMessage(m *entity.Message) *entity.Message {
	if m == nil {
		return nil
	}
	c := *m
	if m.ParentMessageId != nil {
		pid := *m.ParentMessageId
		c.ParentMessageId = &pid
	}
	if m.EditedAt != nil {
		t := *m.EditedAt
		c.EditedAt = &t
	}
	c.Sender = cloneUser(m.Sender)
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneHistory(h *entity.MessageHistory) *entity.MessageHistory {
	if h == nil {
		return nil
	}
	c := *h
	return &c
}

func cloneNotification(n *entity.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	c := *n
	if n.MessageId != nil {
		mid := *n.MessageId
		c.MessageId = &mid
	}
	if n.Metadata != nil {
		meta := make(map[string]interface{}, len(n.Metadata))
		for k, v := range n.Metadata {
			meta[k] = v
		}
		c.Metadata = meta
	}
	return &c
}
