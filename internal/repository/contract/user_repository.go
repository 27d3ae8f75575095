package contract

import (
	"context"

	"chat-messaging-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// Delete hard-deletes the row. FK cascades remove every dependent
	// message, history and notification row in the same statement.
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
