package memory

import (
	"context"
	"fmt"

	"chat-messaging-be/internal/repository/contract"
	"chat-messaging-be/internal/repository/unitofwork"
)

// UnitOfWork satisfies the unitofwork contract over the in-memory store.
// Operations apply immediately; Begin/Commit/Rollback only track state so
// that services exercising the transactional call pattern behave the same
// against this backend. Rollback does not undo applied writes.
type UnitOfWork struct {
	store *Store
	began bool
}

func NewUnitOfWork(store *Store) unitofwork.UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.began {
		return fmt.Errorf("transaction already started")
	}
	u.began = true
	return nil
}

func (u *UnitOfWork) Commit() error {
	if !u.began {
		return fmt.Errorf("no transaction to commit")
	}
	u.began = false
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if !u.began {
		return fmt.Errorf("no transaction to rollback")
	}
	u.began = false
	return nil
}

func (u *UnitOfWork) UserRepository() contract.UserRepository {
	return NewUserRepository(u.store)
}

func (u *UnitOfWork) MessageRepository() contract.MessageRepository {
	return NewMessageRepository(u.store)
}

func (u *UnitOfWork) MessageHistoryRepository() contract.MessageHistoryRepository {
	return NewMessageHistoryRepository(u.store)
}

func (u *UnitOfWork) NotificationRepository() contract.NotificationRepository {
	return NewNotificationRepository(u.store)
}

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return NewUnitOfWork(f.store)
}
