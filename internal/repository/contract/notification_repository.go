package contract

import (
	"context"

	"chat-messaging-be/internal/entity"

	"github.com/google/uuid"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	// FindByUserID returns a page of the user's notifications newest first,
	// plus the total count.
	FindByUserID(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
	CountByUserID(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	// MarkAllAsRead returns the number of rows updated.
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) (int64, error)
}
