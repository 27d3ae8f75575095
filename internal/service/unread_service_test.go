package service

import (
	"testing"

	"chat-messaging-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnreadForNewestFirstWithSender(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	first := f.send(t, alice, bob, nil, "one")
	second := f.send(t, alice, bob, nil, "two")
	third := f.send(t, alice, bob, nil, "three")

	unread, err := f.unread.UnreadFor(f.ctx, bob.Id)
	require.NoError(t, err)
	require.Len(t, unread, 3)
	assert.Equal(t, third, unread[0].Id)
	assert.Equal(t, second, unread[1].Id)
	assert.Equal(t, first, unread[2].Id)
	for _, m := range unread {
		assert.Equal(t, "alice", m.SenderUsername)
		assert.False(t, m.IsRead)
	}

	// The sender has nothing unread; the flow is receiver-side only.
	mine, err := f.unread.UnreadFor(f.ctx, alice.Id)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestMarkReadSubsetThenAll(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	first := f.send(t, alice, bob, nil, "one")
	second := f.send(t, alice, bob, nil, "two")
	f.send(t, alice, bob, nil, "three")

	res, err := f.unread.MarkRead(f.ctx, bob.Id, &dto.MarkReadRequest{
		MessageIds: []uuid.UUID{first, second},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Updated)

	count, err := f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Empty ids means everything remaining.
	res, err = f.unread.MarkRead(f.ctx, bob.Id, &dto.MarkReadRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Updated)

	count, err = f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkReadIgnoresForeignMessages(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	msgId := f.send(t, alice, bob, nil, "for bob")

	// Carol is not the receiver; nothing flips.
	res, err := f.unread.MarkRead(f.ctx, carol.Id, &dto.MarkReadRequest{
		MessageIds: []uuid.UUID{msgId},
	})
	require.NoError(t, err)
	assert.Zero(t, res.Updated)

	count, err := f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUnreadCountCacheInvalidatedByWrites(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	f.send(t, alice, bob, nil, "one")

	count, err := f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// A new send must be visible immediately, cache notwithstanding.
	f.send(t, alice, bob, nil, "two")
	count, err = f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// Marking read likewise.
	_, err = f.unread.MarkRead(f.ctx, bob.Id, &dto.MarkReadRequest{})
	require.NoError(t, err)
	count, err = f.unread.UnreadCount(f.ctx, bob.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}
