package memory

import (
	"context"
	"sort"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/contract"

	"github.com/google/uuid"
)

type MessageHistoryRepository struct {
	store *Store
}

func NewMessageHistoryRepository(store *Store) contract.MessageHistoryRepository {
	return &MessageHistoryRepository{store: store}
}

func (r *MessageHistoryRepository) Create(ctx context.Context, history *entity.MessageHistory) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Same safety net as the composite unique index in the schema.
	for _, h := range r.store.histories {
		if h.MessageId == history.MessageId && h.Version == history.Version {
			return contract.ErrVersionConflict
		}
	}

	history.Id = ensureId(history.Id)
	history.EditedAt = ensureTime(history.EditedAt)
	r.store.histories[history.Id] = cloneHistory(history)
	return nil
}

func (r *MessageHistoryRepository) FindByMessageID(ctx context.Context, messageId uuid.UUID) ([]*entity.MessageHistory, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entity.MessageHistory
	for _, h := range r.store.histories {
		if h.MessageId == messageId {
			result = append(result, cloneHistory(h))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Version > result[j].Version
	})
	return result, nil
}

func (r *MessageHistoryRepository) CountByMessageID(ctx context.Context, messageId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, h := range r.store.histories {
		if h.MessageId == messageId {
			count++
		}
	}
	return count, nil
}

func (r *MessageHistoryRepository) MaxVersionForMessage(ctx context.Context, messageId uuid.UUID) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	maxVersion := 0
	for _, h := range r.store.histories {
		if h.MessageId == messageId && h.Version > maxVersion {
			maxVersion = h.Version
		}
	}
	return maxVersion, nil
}

func (r *MessageHistoryRepository) CountByEditor(ctx context.Context, editorId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, h := range r.store.histories {
		if h.EditedById == editorId {
			count++
		}
	}
	return count, nil
}

func (r *MessageHistoryRepository) DeleteAllByEditor(ctx context.Context, editorId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for hid, h := range r.store.histories {
		if h.EditedById == editorId {
			delete(r.store.histories, hid)
		}
	}
	return nil
}
