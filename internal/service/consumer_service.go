package service

import (
	"context"
	"encoding/json"
	"log"

	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the post-commit delivery topic and pushes each
// committed notification to the receiver's live WebSocket sessions.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	delivery   NotificationDelivery
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	delivery NotificationDelivery,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		delivery:   delivery,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishNotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal delivery message: %v", err)
		msg.Ack() // malformed payloads would retry forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	notif, err := uow.NotificationRepository().FindByID(ctx, payload.NotificationId)
	if err != nil {
		log.Printf("[ERROR] Failed to load notification %s: %v", payload.NotificationId, err)
		msg.Nack()
		return
	}
	if notif == nil {
		// Deleted between commit and delivery (e.g. cascade from a message
		// or account deletion). Nothing to push.
		log.Printf("[INFO] Notification %s gone before delivery, skipping", payload.NotificationId)
		msg.Ack()
		return
	}

	if cs.delivery != nil {
		cs.delivery.Send(payload.UserId, notif)
	}
	msg.Ack()
}
