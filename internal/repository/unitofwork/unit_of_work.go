package unitofwork

import (
	"context"

	"chat-messaging-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical operation. After
// Begin, every repository accessor is bound to the same transaction, so a
// read-then-decide-then-write sequence (the edit path) serializes against
// concurrent writers.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	MessageRepository() contract.MessageRepository
	MessageHistoryRepository() contract.MessageHistoryRepository
	NotificationRepository() contract.NotificationRepository
}
