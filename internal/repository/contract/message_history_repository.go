package contract

import (
	"context"

	"chat-messaging-be/internal/entity"

	"github.com/google/uuid"
)

type MessageHistoryRepository interface {
	// Create appends a snapshot. A duplicate (message_id, version) pair
	// fails with a conflict error; callers surface it, never retry here.
	Create(ctx context.Context, history *entity.MessageHistory) error
	// FindByMessageID returns snapshots newest version first.
	FindByMessageID(ctx context.Context, messageId uuid.UUID) ([]*entity.MessageHistory, error)
	CountByMessageID(ctx context.Context, messageId uuid.UUID) (int64, error)
	// MaxVersionForMessage returns 0 when no history exists yet.
	MaxVersionForMessage(ctx context.Context, messageId uuid.UUID) (int, error)
	CountByEditor(ctx context.Context, editorId uuid.UUID) (int64, error)
	// DeleteAllByEditor removes histories still referencing the editor
	// after an account deletion. Zero rows affected is not an error.
	DeleteAllByEditor(ctx context.Context, editorId uuid.UUID) error
}
