package service

import (
	"testing"

	"chat-messaging-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderNoOpWhenRowMissing(t *testing.T) {
	f := newFixture(t)
	recorder := NewEditHistoryRecorder()
	uow := f.factory.NewUnitOfWork(f.ctx)

	// Never persisted; the recorder must degrade to a no-op, not fail.
	unsaved := &entity.Message{
		Id:       uuid.New(),
		SenderId: uuid.New(),
		Content:  "draft",
	}
	history, err := recorder.OnMessageSave(f.ctx, uow, unsaved, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, history)
	assert.False(t, unsaved.Edited)
}

func TestRecorderFallsBackToSenderAsEditor(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	recorder := NewEditHistoryRecorder()

	msgId := f.send(t, alice, bob, nil, "original")

	uow := f.factory.NewUnitOfWork(f.ctx)
	msg, err := uow.MessageRepository().FindByID(f.ctx, msgId)
	require.NoError(t, err)

	incoming := *msg
	incoming.Content = "changed"
	history, err := recorder.OnMessageSave(f.ctx, uow, &incoming, uuid.Nil)
	require.NoError(t, err)
	require.NotNil(t, history)
	assert.Equal(t, alice.Id, history.EditedById)
	assert.Equal(t, "original", history.OldContent)
	assert.Equal(t, 1, history.Version)
	assert.True(t, incoming.Edited)
	require.NotNil(t, incoming.EditedAt)
}
