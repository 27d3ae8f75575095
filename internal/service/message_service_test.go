package service

import (
	"strings"
	"testing"

	"chat-messaging-be/internal/constant"
	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendCreatesExactlyOneNotification(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	msgId := f.send(t, alice, bob, nil, "Hello Bob")

	msg := f.message(t, msgId)
	require.NotNil(t, msg)
	assert.False(t, msg.IsRead, "a fresh message must be unread")

	uow := f.factory.NewUnitOfWork(f.ctx)
	notifs, total, err := uow.NotificationRepository().FindByUserID(f.ctx, bob.Id, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)

	n := notifs[0]
	assert.Equal(t, constant.NotificationTypeMessage, n.NotificationType)
	assert.Equal(t, "New message from alice", n.Title)
	assert.Equal(t, "Hello Bob", n.Content)
	require.NotNil(t, n.MessageId)
	assert.Equal(t, msgId, *n.MessageId)
	assert.Equal(t, "alice", n.Metadata["sender_username"])
	assert.False(t, n.IsRead)
}

func TestSendNotificationPreviewTruncation(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	long := strings.Repeat("å", 60)
	f.send(t, alice, bob, nil, long)

	uow := f.factory.NewUnitOfWork(f.ctx)
	notifs, _, err := uow.NotificationRepository().FindByUserID(f.ctx, bob.Id, 10, 0)
	require.NoError(t, err)
	require.Len(t, notifs, 1)

	want := strings.Repeat("å", constant.NotificationPreviewLength) + "..."
	assert.Equal(t, want, notifs[0].Content)
}

func TestSendValidationAndPermissions(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	t.Run("unknown receiver", func(t *testing.T) {
		_, err := f.messages.Send(f.ctx, alice.Id, &dto.SendMessageRequest{
			ReceiverId: uuid.New(),
			Content:    "hi",
		})
		requireStatus(t, err, fiber.StatusNotFound)
	})

	t.Run("send to self", func(t *testing.T) {
		_, err := f.messages.Send(f.ctx, alice.Id, &dto.SendMessageRequest{
			ReceiverId: alice.Id,
			Content:    "hi me",
		})
		requireStatus(t, err, fiber.StatusBadRequest)
	})

	t.Run("unknown parent", func(t *testing.T) {
		parent := uuid.New()
		_, err := f.messages.Send(f.ctx, alice.Id, &dto.SendMessageRequest{
			ReceiverId:      bob.Id,
			Content:         "hi",
			ParentMessageId: &parent,
		})
		requireStatus(t, err, fiber.StatusNotFound)
	})

	t.Run("reply by outsider", func(t *testing.T) {
		rootId := f.send(t, alice, bob, nil, "private thread")
		_, err := f.messages.Send(f.ctx, carol.Id, &dto.SendMessageRequest{
			ReceiverId:      alice.Id,
			Content:         "let me in",
			ParentMessageId: &rootId,
		})
		requireStatus(t, err, fiber.StatusForbidden)
	})
}

func TestEditRecordsContiguousVersions(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	msgId := f.send(t, alice, bob, nil, "Hello")

	res := f.edit(t, alice, msgId, "Hello there")
	assert.True(t, res.Edited)
	assert.Equal(t, 1, res.Version)

	res = f.edit(t, alice, msgId, "Hi")
	assert.Equal(t, 2, res.Version)

	msg := f.message(t, msgId)
	assert.Equal(t, "Hi", msg.Content)
	assert.True(t, msg.Edited)
	require.NotNil(t, msg.EditedAt)

	histories, err := f.messages.GetHistory(f.ctx, alice.Id, msgId)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	// Newest version first, each snapshot holding the content it replaced.
	assert.Equal(t, 2, histories[0].Version)
	assert.Equal(t, "Hello there", histories[0].OldContent)
	assert.Equal(t, 1, histories[1].Version)
	assert.Equal(t, "Hello", histories[1].OldContent)
	assert.Equal(t, alice.Id, histories[0].EditedById)
}

func TestEditUnchangedContentIsNoOp(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	msgId := f.send(t, alice, bob, nil, "same words")

	res := f.edit(t, bob, msgId, "same words")
	assert.False(t, res.Edited)
	assert.Equal(t, 0, res.Version)

	msg := f.message(t, msgId)
	assert.False(t, msg.Edited)
	assert.Nil(t, msg.EditedAt)

	histories, err := f.messages.GetHistory(f.ctx, alice.Id, msgId)
	require.NoError(t, err)
	assert.Empty(t, histories)
}

func TestEditPermissions(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	msgId := f.send(t, alice, bob, nil, "between us")

	_, err := f.messages.Edit(f.ctx, carol.Id, &dto.EditMessageRequest{Id: msgId, Content: "hijack"})
	requireStatus(t, err, fiber.StatusForbidden)

	_, err = f.messages.Edit(f.ctx, alice.Id, &dto.EditMessageRequest{Id: uuid.New(), Content: "ghost"})
	requireStatus(t, err, fiber.StatusNotFound)

	// The receiver is a participant and may edit too.
	res := f.edit(t, bob, msgId, "receiver edit")
	assert.True(t, res.Edited)

	histories, err := f.messages.GetHistory(f.ctx, bob.Id, msgId)
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, bob.Id, histories[0].EditedById)
}

func TestEditedFlagImpliesHistory(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	plainId := f.send(t, alice, bob, nil, "never edited")
	editedId := f.send(t, alice, bob, nil, "will change")
	f.edit(t, alice, editedId, "changed")

	uow := f.factory.NewUnitOfWork(f.ctx)
	for _, id := range []uuid.UUID{plainId, editedId} {
		msg := f.message(t, id)
		count, err := uow.MessageHistoryRepository().CountByMessageID(f.ctx, id)
		require.NoError(t, err)
		if msg.Edited {
			assert.Positive(t, count)
		} else {
			assert.Zero(t, count)
		}
	}
}

func TestDuplicateVersionSurfacesConflict(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	msgId := f.send(t, alice, bob, nil, "racy")
	f.edit(t, alice, msgId, "first edit")

	uow := f.factory.NewUnitOfWork(f.ctx)
	err := uow.MessageHistoryRepository().Create(f.ctx, &entity.MessageHistory{
		MessageId:  msgId,
		OldContent: "racy",
		EditedById: bob.Id,
		Version:    1,
	})
	require.ErrorIs(t, err, contract.ErrVersionConflict)
}

func TestDeleteMessageRemovesSubtreeAndHistory(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	rootId := f.send(t, alice, bob, nil, "root")
	replyId := f.send(t, bob, alice, &rootId, "reply")
	nestedId := f.send(t, alice, bob, &replyId, "nested")
	f.edit(t, alice, rootId, "root v2")

	require.NoError(t, f.messages.Delete(f.ctx, alice.Id, rootId))

	uow := f.factory.NewUnitOfWork(f.ctx)
	for _, id := range []uuid.UUID{rootId, replyId, nestedId} {
		msg, err := uow.MessageRepository().FindByID(f.ctx, id)
		require.NoError(t, err)
		assert.Nil(t, msg)
	}
	count, err := uow.MessageHistoryRepository().CountByMessageID(f.ctx, rootId)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, total, err := uow.NotificationRepository().FindByUserID(f.ctx, bob.Id, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total, "message notifications go with the message")
}

func TestDeletePermissions(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	msgId := f.send(t, alice, bob, nil, "keep out")

	err := f.messages.Delete(f.ctx, carol.Id, msgId)
	requireStatus(t, err, fiber.StatusForbidden)

	err = f.messages.Delete(f.ctx, alice.Id, uuid.New())
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestGetHistoryPermissions(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	msgId := f.send(t, alice, bob, nil, "draft")
	f.edit(t, alice, msgId, "final")

	_, err := f.messages.GetHistory(f.ctx, carol.Id, msgId)
	requireStatus(t, err, fiber.StatusForbidden)

	histories, err := f.messages.GetHistory(f.ctx, bob.Id, msgId)
	require.NoError(t, err)
	assert.Len(t, histories, 1)
}

func TestGetConversationOrderedOldestFirst(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	first := f.send(t, alice, bob, nil, "one")
	second := f.send(t, bob, alice, nil, "two")
	third := f.send(t, alice, bob, nil, "three")
	f.send(t, alice, carol, nil, "unrelated")

	conv, err := f.messages.GetConversation(f.ctx, alice.Id, bob.Id)
	require.NoError(t, err)
	require.Len(t, conv, 3)
	assert.Equal(t, first, conv[0].Id)
	assert.Equal(t, second, conv[1].Id)
	assert.Equal(t, third, conv[2].Id)
	assert.Equal(t, "alice", conv[0].SenderUsername)
	assert.Equal(t, "bob", conv[1].SenderUsername)
}
