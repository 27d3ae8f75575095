package memory

import (
	"context"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/contract"

	"github.com/google/uuid"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) contract.UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user.Id = ensureId(user.Id)
	user.CreatedAt = ensureTime(user.CreatedAt)
	r.store.users[user.Id] = cloneUser(user)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneUser(r.store.users[id]), nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteUserLocked(id)
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.users)), nil
}
