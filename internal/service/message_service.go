package service

import (
	"context"
	"encoding/json"
	"time"

	"chat-messaging-be/internal/constant"
	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/pkg/logger"
	"chat-messaging-be/internal/repository/unitofwork"
	"chat-messaging-be/pkg/events"
	pktNats "chat-messaging-be/pkg/nats"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageService interface {
	Send(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	Edit(ctx context.Context, actorId uuid.UUID, req *dto.EditMessageRequest) (*dto.EditMessageResponse, error)
	Delete(ctx context.Context, actorId, id uuid.UUID) error
	GetHistory(ctx context.Context, actorId, messageId uuid.UUID) ([]*dto.MessageHistoryResponse, error)
	GetConversation(ctx context.Context, actorId, otherUserId uuid.UUID) ([]*dto.MessageResponse, error)
}

type messageService struct {
	uowFactory       unitofwork.RepositoryFactory
	recorder         *EditHistoryRecorder
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	unreadService    IUnreadQueryService
	logger           logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	recorder *EditHistoryRecorder,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	unreadService IUnreadQueryService,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:       uowFactory,
		recorder:         recorder,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		unreadService:    unreadService,
		logger:           log,
	}
}

// Send persists the message and its receiver notification in one
// transaction, so a committed message always has exactly one notification.
// Real-time delivery and the external event mirror happen after commit and
// never fail the request.
func (s *messageService) Send(ctx context.Context, senderId uuid.UUID, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if senderId == req.ReceiverId {
		return nil, fiber.NewError(fiber.StatusBadRequest, "cannot send a message to yourself")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	sender, err := uow.UserRepository().FindByID(ctx, senderId)
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "sender not found")
	}

	receiver, err := uow.UserRepository().FindByID(ctx, req.ReceiverId)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "receiver not found")
	}

	if req.ParentMessageId != nil {
		parent, err := uow.MessageRepository().FindByID(ctx, *req.ParentMessageId)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, fiber.NewError(fiber.StatusNotFound, "parent message not found")
		}
		if !parent.IsParticipant(senderId) {
			return nil, fiber.NewError(fiber.StatusForbidden, "cannot reply to a conversation you are not part of")
		}
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	msg := &entity.Message{
		Id:              uuid.New(),
		SenderId:        senderId,
		ReceiverId:      req.ReceiverId,
		ParentMessageId: req.ParentMessageId,
		Content:         req.Content,
		Timestamp:       time.Now(),
		IsRead:          false, // new messages are always unread
	}
	if err := uow.MessageRepository().Create(ctx, msg); err != nil {
		return nil, err
	}

	notif := buildMessageNotification(sender, msg)
	if err := uow.NotificationRepository().Create(ctx, notif); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterSend(ctx, msg, notif)

	return &dto.SendMessageResponse{Id: msg.Id}, nil
}

func (s *messageService) afterSend(ctx context.Context, msg *entity.Message, notif *entity.Notification) {
	payload, err := json.Marshal(dto.PublishNotificationMessage{
		NotificationId: notif.Id,
		UserId:         msg.ReceiverId,
	})
	if err == nil {
		if err := s.publisherService.Publish(ctx, payload); err != nil {
			s.logger.Warn("MessageService", "Failed to publish delivery message", map[string]interface{}{
				"notification_id": notif.Id.String(),
				"error":           err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewMessageCreated(msg.Id, msg.SenderId, msg.ReceiverId, notif.Id)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("MessageService", "Failed to publish MESSAGE_CREATED event", map[string]interface{}{
				"message_id": msg.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	s.unreadService.InvalidateCount(msg.ReceiverId)
}

// Edit rewrites the content of an existing message. The stored content is
// snapshotted to history inside the same transaction, so "edited" and "has
// history" stay in lockstep. Editing with identical content is a no-op.
func (s *messageService) Edit(ctx context.Context, actorId uuid.UUID, req *dto.EditMessageRequest) (*dto.EditMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindByID(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "message not found")
	}
	if !msg.IsParticipant(actorId) {
		return nil, fiber.NewError(fiber.StatusForbidden, "only participants may edit a message")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	incoming := *msg
	incoming.Content = req.Content

	history, err := s.recorder.OnMessageSave(ctx, uow, &incoming, actorId)
	if err != nil {
		return nil, err
	}

	if err := uow.MessageRepository().Update(ctx, &incoming); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	version := 0
	if history != nil {
		version = history.Version
		if s.eventPublisher != nil {
			evt := events.NewMessageEdited(msg.Id, history.EditedById, history.Version)
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.logger.Warn("MessageService", "Failed to publish MESSAGE_EDITED event", map[string]interface{}{
					"message_id": msg.Id.String(),
					"error":      err.Error(),
				})
			}
		}
	}

	return &dto.EditMessageResponse{
		Id:      incoming.Id,
		Edited:  incoming.Edited,
		Version: version,
	}, nil
}

func (s *messageService) Delete(ctx context.Context, actorId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindByID(ctx, id)
	if err != nil {
		return err
	}
	if msg == nil {
		return fiber.NewError(fiber.StatusNotFound, "message not found")
	}
	if !msg.IsParticipant(actorId) {
		return fiber.NewError(fiber.StatusForbidden, "only participants may delete a message")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	s.unreadService.InvalidateCount(msg.ReceiverId)
	return nil
}

func (s *messageService) GetHistory(ctx context.Context, actorId, messageId uuid.UUID) ([]*dto.MessageHistoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindByID(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "message not found")
	}
	if !msg.IsParticipant(actorId) {
		return nil, fiber.NewError(fiber.StatusForbidden, "only participants may view edit history")
	}

	histories, err := uow.MessageHistoryRepository().FindByMessageID(ctx, messageId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageHistoryResponse, len(histories))
	for i, h := range histories {
		res[i] = &dto.MessageHistoryResponse{
			Version:    h.Version,
			OldContent: h.OldContent,
			EditedById: h.EditedById,
			EditedAt:   h.EditedAt,
		}
	}
	return res, nil
}

func (s *messageService) GetConversation(ctx context.Context, actorId, otherUserId uuid.UUID) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	other, err := uow.UserRepository().FindByID(ctx, otherUserId)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "user not found")
	}

	msgs, err := uow.MessageRepository().FindConversation(ctx, actorId, otherUserId)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageResponse, len(msgs))
	for i, m := range msgs {
		res[i] = toMessageResponse(m)
	}
	return res, nil
}

func buildMessageNotification(sender *entity.User, msg *entity.Message) *entity.Notification {
	return &entity.Notification{
		Id:               uuid.New(),
		UserId:           msg.ReceiverId,
		MessageId:        &msg.Id,
		NotificationType: constant.NotificationTypeMessage,
		Title:            "New message from " + sender.Username,
		Content:          messagePreview(msg.Content),
		Metadata: map[string]interface{}{
			"message_id":      msg.Id.String(),
			"sender_id":       msg.SenderId.String(),
			"sender_username": sender.Username,
		},
		IsRead:    false,
		CreatedAt: time.Now(),
	}
}

// messagePreview truncates by runes, not bytes, so multi-byte content never
// gets split mid-character.
func messagePreview(content string) string {
	runes := []rune(content)
	if len(runes) <= constant.NotificationPreviewLength {
		return content
	}
	return string(runes[:constant.NotificationPreviewLength]) + "..."
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	res := &dto.MessageResponse{
		Id:              m.Id,
		SenderId:        m.SenderId,
		ReceiverId:      m.ReceiverId,
		ParentMessageId: m.ParentMessageId,
		Content:         m.Content,
		Timestamp:       m.Timestamp,
		IsRead:          m.IsRead,
		Edited:          m.Edited,
		EditedAt:        m.EditedAt,
	}
	if m.Sender != nil {
		res.SenderUsername = m.Sender.Username
	}
	return res
}
