package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/pkg/logger"
	"chat-messaging-be/internal/repository/memory"
	"chat-messaging-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// captureDelivery records pushed notifications instead of writing to real
// WebSocket sessions.
type captureDelivery struct {
	mu   sync.Mutex
	sent map[uuid.UUID][]*entity.Notification
}

func newCaptureDelivery() *captureDelivery {
	return &captureDelivery{sent: make(map[uuid.UUID][]*entity.Notification)}
}

func (d *captureDelivery) Send(userID uuid.UUID, notification *entity.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent[userID] = append(d.sent[userID], notification)
}

func (d *captureDelivery) Broadcast(notification *entity.Notification) {}

func (d *captureDelivery) sentTo(userID uuid.UUID) []*entity.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*entity.Notification(nil), d.sent[userID]...)
}

type fixture struct {
	ctx      context.Context
	store    *memory.Store
	factory  unitofwork.RepositoryFactory
	pubSub   *gochannel.GoChannel
	topic    string
	messages IMessageService
	threads  IThreadService
	unread   IUnreadQueryService
	notifs   INotificationService
	users    IUserService
	delivery *captureDelivery
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewRepositoryFactory(store)
	log := logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "test.log"))

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	const topic = "test_delivery"
	publisher := NewPublisherService(topic, pubSub)

	delivery := newCaptureDelivery()
	unread := NewUnreadQueryService(factory)

	return &fixture{
		ctx:      context.Background(),
		store:    store,
		factory:  factory,
		pubSub:   pubSub,
		topic:    topic,
		messages: NewMessageService(factory, NewEditHistoryRecorder(), publisher, nil, unread, log),
		threads:  NewThreadService(factory),
		unread:   unread,
		notifs:   NewNotificationService(factory, delivery, log),
		users:    NewUserService(factory, nil, unread, log),
		delivery: delivery,
	}
}

func (f *fixture) createUser(t *testing.T, username string) *entity.User {
	t.Helper()
	u := &entity.User{
		Id:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
	}
	uow := f.factory.NewUnitOfWork(f.ctx)
	require.NoError(t, uow.UserRepository().Create(f.ctx, u))
	return u
}

func (f *fixture) send(t *testing.T, sender, receiver *entity.User, parentId *uuid.UUID, content string) uuid.UUID {
	t.Helper()
	res, err := f.messages.Send(f.ctx, sender.Id, &dto.SendMessageRequest{
		ReceiverId:      receiver.Id,
		Content:         content,
		ParentMessageId: parentId,
	})
	require.NoError(t, err)
	return res.Id
}

func (f *fixture) edit(t *testing.T, actor *entity.User, messageId uuid.UUID, content string) *dto.EditMessageResponse {
	t.Helper()
	res, err := f.messages.Edit(f.ctx, actor.Id, &dto.EditMessageRequest{Id: messageId, Content: content})
	require.NoError(t, err)
	return res
}

func (f *fixture) message(t *testing.T, id uuid.UUID) *entity.Message {
	t.Helper()
	uow := f.factory.NewUnitOfWork(f.ctx)
	msg, err := uow.MessageRepository().FindByID(f.ctx, id)
	require.NoError(t, err)
	return msg
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	require.Equal(t, code, fe.Code)
}
