package service

import (
	"context"
	"time"

	"chat-messaging-be/internal/constant"
	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/pkg/logger"
	"chat-messaging-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification *entity.Notification)
	Broadcast(notification *entity.Notification)
}

type INotificationService interface {
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error)
	// MarkAsRead marks one notification as read. Only the owner may do so.
	MarkAsRead(ctx context.Context, userId, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userId uuid.UUID) (int64, error)
	// CreateSystemNotification persists a notification not tied to any
	// message and pushes it to the user's live sessions.
	CreateSystemNotification(ctx context.Context, userId uuid.UUID, title, content string, metadata map[string]interface{}) (*dto.NotificationResponse, error)
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(uowFactory unitofwork.RepositoryFactory, delivery NotificationDelivery, log logger.ILogger) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *notificationService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.NotificationListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notifs, total, err := uow.NotificationRepository().FindByUserID(ctx, userId, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.NotificationResponse, len(notifs))
	for i, n := range notifs {
		items[i] = toNotificationResponse(n)
	}
	return &dto.NotificationListResponse{Items: items, Total: total}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().CountUnread(ctx, userId)
}

func (s *notificationService) MarkAsRead(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notif, err := uow.NotificationRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if notif == nil {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}
	if notif.UserId != userId {
		return fiber.NewError(fiber.StatusForbidden, "notification belongs to another user")
	}

	return uow.NotificationRepository().MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userId uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkAllAsRead(ctx, userId)
}

func (s *notificationService) CreateSystemNotification(ctx context.Context, userId uuid.UUID, title, content string, metadata map[string]interface{}) (*dto.NotificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	notif := &entity.Notification{
		Id:               uuid.New(),
		UserId:           userId,
		MessageId:        nil,
		NotificationType: constant.NotificationTypeSystem,
		Title:            title,
		Content:          content,
		Metadata:         metadata,
		IsRead:           false,
		CreatedAt:        time.Now(),
	}
	if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
		return nil, err
	}

	if s.delivery != nil {
		s.delivery.Send(userId, notif)
	}

	return toNotificationResponse(notif), nil
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		Id:               n.Id,
		MessageId:        n.MessageId,
		NotificationType: n.NotificationType,
		Title:            n.Title,
		Content:          n.Content,
		Metadata:         n.Metadata,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
}
