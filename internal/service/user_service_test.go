package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeletionStats(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	m1 := f.send(t, alice, bob, nil, "one")
	f.send(t, alice, bob, nil, "two")
	f.send(t, bob, alice, nil, "back at you")
	f.edit(t, alice, m1, "one, edited")

	stats, err := f.users.DeletionStats(f.ctx, alice.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice", stats.Username)
	assert.Equal(t, "alice@example.com", stats.Email)
	assert.EqualValues(t, 2, stats.SentMessages)
	assert.EqualValues(t, 1, stats.ReceivedMessages)
	assert.EqualValues(t, 3, stats.TotalMessages)
	assert.EqualValues(t, 1, stats.Notifications) // bob's message to alice
	assert.EqualValues(t, 1, stats.MessageHistories)
	assert.EqualValues(t, 5, stats.TotalDataPoints)

	_, err = f.users.DeletionStats(f.ctx, uuid.New())
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestDeleteAccountRemovesAllTraces(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	// Alice's footprint: sent, received, an edit, plus notifications.
	sentId := f.send(t, alice, bob, nil, "from alice")
	recvId := f.send(t, bob, alice, nil, "to alice")
	f.edit(t, alice, sentId, "from alice, edited")

	// Untouched conversation between the other two.
	bystanderId := f.send(t, carol, bob, nil, "carol to bob")

	res, err := f.users.DeleteAccount(f.ctx, alice.Id)
	require.NoError(t, err)
	assert.True(t, res.Deleted)

	uow := f.factory.NewUnitOfWork(f.ctx)

	gone, err := uow.UserRepository().FindByID(f.ctx, alice.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	for _, id := range []uuid.UUID{sentId, recvId} {
		msg, err := uow.MessageRepository().FindByID(f.ctx, id)
		require.NoError(t, err)
		assert.Nil(t, msg)
	}

	histCount, err := uow.MessageHistoryRepository().CountByEditor(f.ctx, alice.Id)
	require.NoError(t, err)
	assert.Zero(t, histCount)

	notifCount, err := uow.NotificationRepository().CountByUserID(f.ctx, alice.Id)
	require.NoError(t, err)
	assert.Zero(t, notifCount)

	// The bystanders keep their data.
	still, err := uow.MessageRepository().FindByID(f.ctx, bystanderId)
	require.NoError(t, err)
	require.NotNil(t, still)
	bobUser, err := uow.UserRepository().FindByID(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.NotNil(t, bobUser)
}

func TestDeleteAccountRefreshesCounterpartUnreadCounts(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	f.send(t, alice, bob, nil, "soon to vanish")

	// Warm bob's cached count before the deletion cascades his inbox away.
	count, err := f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	_, err = f.users.DeleteAccount(f.ctx, alice.Id)
	require.NoError(t, err)

	count, err = f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteAccountUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.users.DeleteAccount(f.ctx, uuid.New())
	requireStatus(t, err, fiber.StatusNotFound)
}
