package memory

import (
	"context"
	"sort"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/contract"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	store *Store
}

func NewNotificationRepository(store *Store) contract.NotificationRepository {
	return &NotificationRepository{store: store}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	notification.Id = ensureId(notification.Id)
	notification.CreatedAt = ensureTime(notification.CreatedAt)
	r.store.notifications[notification.Id] = cloneNotification(notification)
	return nil
}

func (r *NotificationRepository) FindByUserID(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*entity.Notification, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var all []*entity.Notification
	for _, n := range r.store.notifications {
		if n.UserId == userId {
			all = append(all, cloneNotification(n))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []*entity.Notification{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return cloneNotification(r.store.notifications[id]), nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, n := range r.store.notifications {
		if n.UserId == userId && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) CountByUserID(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var count int64
	for _, n := range r.store.notifications {
		if n.UserId == userId {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if n, ok := r.store.notifications[id]; ok {
		n.IsRead = true
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var updated int64
	for _, n := range r.store.notifications {
		if n.UserId == userId && !n.IsRead {
			n.IsRead = true
			updated++
		}
	}
	return updated, nil
}
