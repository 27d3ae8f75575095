package events

import (
	"time"

	"chat-messaging-be/internal/constant"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "MESSAGE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

func NewMessageCreated(messageId, senderId, receiverId, notificationId uuid.UUID) Event {
	return BaseEvent{
		Type: constant.EventMessageCreated,
		Data: map[string]interface{}{
			"message_id":      messageId.String(),
			"sender_id":       senderId.String(),
			"receiver_id":     receiverId.String(),
			"notification_id": notificationId.String(),
		},
		OccurredAt: time.Now(),
	}
}

func NewMessageEdited(messageId, editorId uuid.UUID, version int) Event {
	return BaseEvent{
		Type: constant.EventMessageEdited,
		Data: map[string]interface{}{
			"message_id": messageId.String(),
			"editor_id":  editorId.String(),
			"version":    version,
		},
		OccurredAt: time.Now(),
	}
}

func NewUserDeleted(userId uuid.UUID) Event {
	return BaseEvent{
		Type: constant.EventUserDeleted,
		Data: map[string]interface{}{
			"user_id": userId.String(),
		},
		OccurredAt: time.Now(),
	}
}
