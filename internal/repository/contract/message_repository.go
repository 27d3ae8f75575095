package contract

import (
	"context"

	"chat-messaging-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	Update(ctx context.Context, msg *entity.Message) error
	// Delete removes the message; replies, histories and notifications go
	// with it via FK cascade.
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error)
	// FindByParentID returns direct replies ordered by (timestamp, seq) asc.
	FindByParentID(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error)
	// FindUnreadForReceiver returns unread received messages newest first,
	// with Sender populated.
	FindUnreadForReceiver(ctx context.Context, receiverId uuid.UUID) ([]*entity.Message, error)
	CountUnreadForReceiver(ctx context.Context, receiverId uuid.UUID) (int64, error)
	// MarkRead flips is_read for the receiver's unread messages, optionally
	// restricted to ids, and returns the number of rows actually updated.
	MarkRead(ctx context.Context, receiverId uuid.UUID, ids []uuid.UUID) (int64, error)
	// FindConversation returns every message exchanged between the two
	// users, oldest first.
	FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error)
	CountBySender(ctx context.Context, senderId uuid.UUID) (int64, error)
	CountByReceiver(ctx context.Context, receiverId uuid.UUID) (int64, error)
	// DistinctReceiversFromSender lists every user that received at least
	// one message from the sender. Used to refresh their cached unread
	// counts when the sender's account is deleted.
	DistinctReceiversFromSender(ctx context.Context, senderId uuid.UUID) ([]uuid.UUID, error)
	// DeleteAllForUser is the second pass after an account deletion:
	// remove anything still referencing the user as sender or receiver.
	// Zero rows affected is not an error.
	DeleteAllForUser(ctx context.Context, userId uuid.UUID) error
}
