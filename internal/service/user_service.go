package service

import (
	"context"

	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/pkg/logger"
	"chat-messaging-be/internal/repository/unitofwork"
	"chat-messaging-be/pkg/events"
	pktNats "chat-messaging-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IUserService interface {
	// DeletionStats reports what an account deletion would remove, for the
	// confirmation screen.
	DeletionStats(ctx context.Context, userId uuid.UUID) (*dto.DeletionStatsResponse, error)
	// DeleteAccount removes the user and every row referencing them:
	// messages sent and received, their edit histories, notifications.
	DeleteAccount(ctx context.Context, userId uuid.UUID) (*dto.DeleteAccountResponse, error)
}

type userService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	unreadService  IUnreadQueryService
	logger         logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, unreadService IUnreadQueryService, log logger.ILogger) IUserService {
	return &userService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		unreadService:  unreadService,
		logger:         log,
	}
}

func (s *userService) DeletionStats(ctx context.Context, userId uuid.UUID) (*dto.DeletionStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	sent, err := uow.MessageRepository().CountBySender(ctx, userId)
	if err != nil {
		return nil, err
	}
	received, err := uow.MessageRepository().CountByReceiver(ctx, userId)
	if err != nil {
		return nil, err
	}
	notifications, err := uow.NotificationRepository().CountByUserID(ctx, userId)
	if err != nil {
		return nil, err
	}
	histories, err := uow.MessageHistoryRepository().CountByEditor(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &dto.DeletionStatsResponse{
		Username:         user.Username,
		Email:            user.Email,
		SentMessages:     sent,
		ReceivedMessages: received,
		TotalMessages:    sent + received,
		Notifications:    notifications,
		MessageHistories: histories,
		TotalDataPoints:  sent + received + notifications + histories,
	}, nil
}

// DeleteAccount deletes the user row inside a transaction; FK cascades take
// the dependent rows with it. A sweep runs after commit to catch anything a
// misconfigured constraint left behind. The sweep only logs, the deletion
// itself already succeeded.
func (s *userService) DeleteAccount(ctx context.Context, userId uuid.UUID) (*dto.DeleteAccountResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindByID(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	// Collected before the delete; the cascade erases the messages these
	// receivers' unread counts were computed from.
	receivers, err := uow.MessageRepository().DistinctReceiversFromSender(ctx, userId)
	if err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.sweepRemnants(ctx, userId)

	s.unreadService.InvalidateCount(userId)
	for _, receiverId := range receivers {
		s.unreadService.InvalidateCount(receiverId)
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewUserDeleted(userId)); err != nil {
			s.logger.Warn("UserService", "Failed to publish USER_DELETED event", map[string]interface{}{
				"user_id": userId.String(),
				"error":   err.Error(),
			})
		}
	}

	return &dto.DeleteAccountResponse{Deleted: true}, nil
}

func (s *userService) sweepRemnants(ctx context.Context, userId uuid.UUID) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		s.logger.Error("UserService", "Post-deletion sweep could not start", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteAllForUser(ctx, userId); err != nil {
		s.logger.Error("UserService", "Post-deletion sweep failed on messages", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return
	}
	if err := uow.MessageHistoryRepository().DeleteAllByEditor(ctx, userId); err != nil {
		s.logger.Error("UserService", "Post-deletion sweep failed on histories", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return
	}

	if err := uow.Commit(); err != nil {
		s.logger.Error("UserService", "Post-deletion sweep failed to commit", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}
