package memory

import (
	"context"
	"sort"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/contract"

	"github.com/google/uuid"
)

type MessageRepository struct {
	store *Store
}

func NewMessageRepository(store *Store) contract.MessageRepository {
	return &MessageRepository{store: store}
}

func (r *MessageRepository) Create(ctx context.Context, msg *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	msg.Id = ensureId(msg.Id)
	msg.Seq = r.store.nextSeq()
	msg.Timestamp = ensureTime(msg.Timestamp)
	r.store.messages[msg.Id] = cloneMessage(msg)
	return nil
}

func (r *MessageRepository) Update(ctx context.Context, msg *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.messages[msg.Id] = cloneMessage(msg)
	return nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.deleteMessageLocked(id)
	return nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneMessage(r.store.messages[id]), nil
}

func (r *MessageRepository) FindByParentID(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entity.Message
	for _, m := range r.store.messages {
		if m.ParentMessageId != nil && *m.ParentMessageId == parentId {
			result = append(result, cloneMessage(m))
		}
	}
	sortThreadOrder(result)
	return result, nil
}

func (r *MessageRepository) FindUnreadForReceiver(ctx context.Context, receiverId uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entity.Message
	for _, m := range r.store.messages {
		if m.ReceiverId == receiverId && !m.IsRead {
			c := cloneMessage(m)
			c.Sender = cloneUser(r.store.users[m.SenderId])
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].Seq > result[j].Seq
	})
	return result, nil
}

func (r *MessageRepository) CountUnreadForReceiver(ctx context.Context, receiverId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, m := range r.store.messages {
		if m.ReceiverId == receiverId && !m.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, receiverId uuid.UUID, ids []uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idSet := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	var updated int64
	for _, m := range r.store.messages {
		if m.ReceiverId != receiverId || m.IsRead {
			continue
		}
		if len(ids) > 0 && !idSet[m.Id] {
			continue
		}
		m.IsRead = true
		updated++
	}
	return updated, nil
}

func (r *MessageRepository) FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*entity.Message
	for _, m := range r.store.messages {
		if (m.SenderId == userA && m.ReceiverId == userB) ||
			(m.SenderId == userB && m.ReceiverId == userA) {
			c := cloneMessage(m)
			c.Sender = cloneUser(r.store.users[m.SenderId])
			result = append(result, c)
		}
	}
	sortThreadOrder(result)
	return result, nil
}

func (r *MessageRepository) CountBySender(ctx context.Context, senderId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, m := range r.store.messages {
		if m.SenderId == senderId {
			count++
		}
	}
	return count, nil
}

func (r *MessageRepository) CountByReceiver(ctx context.Context, receiverId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, m := range r.store.messages {
		if m.ReceiverId == receiverId {
			count++
		}
	}
	return count, nil
}

func (r *MessageRepository) DistinctReceiversFromSender(ctx context.Context, senderId uuid.UUID) ([]uuid.UUID, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, m := range r.store.messages {
		if m.SenderId == senderId && !seen[m.ReceiverId] {
			seen[m.ReceiverId] = true
			ids = append(ids, m.ReceiverId)
		}
	}
	return ids, nil
}

func (r *MessageRepository) DeleteAllForUser(ctx context.Context, userId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var owned []uuid.UUID
	for mid, m := range r.store.messages {
		if m.SenderId == userId || m.ReceiverId == userId {
			owned = append(owned, mid)
		}
	}
	for _, mid := range owned {
		r.store.deleteMessageLocked(mid)
	}
	return nil
}

func sortThreadOrder(msgs []*entity.Message) {
	sort.Slice(msgs, func(i, j int) bool {
		if !msgs[i].Timestamp.Equal(msgs[j].Timestamp) {
			return msgs[i].Timestamp.Before(msgs[j].Timestamp)
		}
		return msgs[i].Seq < msgs[j].Seq
	})
}
