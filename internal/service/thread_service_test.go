package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetThreadRootFromAnyDepth(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	rootId := f.send(t, alice, bob, nil, "root")
	replyId := f.send(t, bob, alice, &rootId, "reply")
	leafId := f.send(t, alice, bob, &replyId, "leaf")

	for _, id := range []uuid.UUID{rootId, replyId, leafId} {
		root, err := f.threads.GetThreadRoot(f.ctx, alice.Id, id)
		require.NoError(t, err)
		assert.Equal(t, rootId, root.Id)
	}
}

func TestGetThreadTreeShape(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	rootId := f.send(t, alice, bob, nil, "root")
	replyA := f.send(t, bob, alice, &rootId, "A")
	replyB := f.send(t, alice, bob, &rootId, "B")
	replyC := f.send(t, alice, bob, &replyA, "C")

	// Works from a leaf too: the whole thread comes back.
	thread, err := f.threads.GetThread(f.ctx, bob.Id, replyC)
	require.NoError(t, err)

	assert.Equal(t, rootId, thread.Root.Id)
	require.Len(t, thread.Replies, 2)

	// Direct replies in send order at depth 0.
	a := thread.Replies[0]
	b := thread.Replies[1]
	assert.Equal(t, replyA, a.Message.Id)
	assert.Equal(t, 0, a.Depth)
	assert.Equal(t, replyB, b.Message.Id)
	assert.Equal(t, 0, b.Depth)
	assert.Empty(t, b.Replies)

	// C nests under A at depth 1.
	require.Len(t, a.Replies, 1)
	assert.Equal(t, replyC, a.Replies[0].Message.Id)
	assert.Equal(t, 1, a.Replies[0].Depth)
}

func TestGetThreadPermissions(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")

	rootId := f.send(t, alice, bob, nil, "private")

	_, err := f.threads.GetThread(f.ctx, carol.Id, rootId)
	requireStatus(t, err, fiber.StatusForbidden)

	_, err = f.threads.GetThread(f.ctx, alice.Id, uuid.New())
	requireStatus(t, err, fiber.StatusNotFound)
}

func TestGetThreadSingleMessage(t *testing.T) {
	f := newFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	msgId := f.send(t, alice, bob, nil, "alone")

	thread, err := f.threads.GetThread(f.ctx, bob.Id, msgId)
	require.NoError(t, err)
	assert.Equal(t, msgId, thread.Root.Id)
	assert.Empty(t, thread.Replies)
}
