package service

import (
	"context"
	"time"

	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Unread counts are hammered by badge polling, so they sit behind a short
// TTL cache. Every write that can change a user's count invalidates it.
const unreadCountCacheTTL = 30 * time.Second

type IUnreadQueryService interface {
	// UnreadFor returns the user's unread received messages, newest first,
	// with sender identity attached.
	UnreadFor(ctx context.Context, userId uuid.UUID) ([]*dto.MessageResponse, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error)
	// MarkRead marks the given messages (or all unread when no ids are
	// given) as read. Only messages received by userId are touched.
	MarkRead(ctx context.Context, userId uuid.UUID, req *dto.MarkReadRequest) (*dto.MarkReadResponse, error)
	InvalidateCount(userId uuid.UUID)
}

type unreadQueryService struct {
	uowFactory unitofwork.RepositoryFactory
	counts     *gocache.Cache
}

func NewUnreadQueryService(uowFactory unitofwork.RepositoryFactory) IUnreadQueryService {
	return &unreadQueryService{
		uowFactory: uowFactory,
		counts:     gocache.New(unreadCountCacheTTL, time.Minute),
	}
}

func (s *unreadQueryService) UnreadFor(ctx context.Context, userId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msgs, err := uow.MessageRepository().FindUnreadForReceiver(ctx, userId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageResponse, len(msgs))
	for i, m := range msgs {
		res[i] = toMessageResponse(m)
	}
	return res, nil
}

func (s *unreadQueryService) UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	key := userId.String()
	if cached, ok := s.counts.Get(key); ok {
		return cached.(int64), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	count, err := uow.MessageRepository().CountUnreadForReceiver(ctx, userId)
	if err != nil {
		return 0, err
	}

	s.counts.SetDefault(key, count)
	return count, nil
}

func (s *unreadQueryService) MarkRead(ctx context.Context, userId uuid.UUID, req *dto.MarkReadRequest) (*dto.MarkReadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	updated, err := uow.MessageRepository().MarkRead(ctx, userId, req.MessageIds)
	if err != nil {
		return nil, err
	}

	s.InvalidateCount(userId)
	return &dto.MarkReadResponse{Updated: updated}, nil
}

func (s *unreadQueryService) InvalidateCount(userId uuid.UUID) {
	s.counts.Delete(userId.String())
}
