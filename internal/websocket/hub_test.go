package websocket

import (
	"path/filepath"
	"testing"
	"time"

	"chat-messaging-be/internal/constant"
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewIsolatedLogger(filepath.Join(t.TempDir(), "hub.log")))
	go hub.Run()
	return hub
}

func registerClient(t *testing.T, hub *Hub, userId uuid.UUID, buffer int) *Client {
	t.Helper()
	client := &Client{Hub: hub, UserID: userId, Send: make(chan []byte, buffer)}
	hub.register <- client
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for _, c := range hub.clients[userId] {
			if c == client {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
	return client
}

func testNotification(userId uuid.UUID) *entity.Notification {
	return &entity.Notification{
		Id:               uuid.New(),
		UserId:           userId,
		NotificationType: constant.NotificationTypeMessage,
		Title:            "New message from alice",
		Content:          "hello",
		CreatedAt:        time.Now(),
	}
}

func TestHubDropsSlowClientWithoutPanic(t *testing.T) {
	hub := newTestHub(t)
	userId := uuid.New()

	slow := registerClient(t, hub, userId, 1)
	slow.Send <- []byte("stuck")

	hub.Send(userId, testNotification(userId))

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[userId]
		return !ok
	}, time.Second, 5*time.Millisecond)

	// The channel must be closed exactly once, by the unregister handler.
	<-slow.Send
	_, open := <-slow.Send
	assert.False(t, open)

	// The hub must still be serving after dropping the client.
	fresh := registerClient(t, hub, userId, 16)
	hub.Send(userId, testNotification(userId))
	select {
	case data := <-fresh.Send:
		assert.Contains(t, string(data), "New message from alice")
	case <-time.After(time.Second):
		t.Fatal("healthy client received nothing after slow client was dropped")
	}
}

func TestHubBroadcastSurvivesMultipleSlowClients(t *testing.T) {
	hub := newTestHub(t)

	slowA := registerClient(t, hub, uuid.New(), 1)
	slowA.Send <- []byte("stuck")
	slowB := registerClient(t, hub, uuid.New(), 1)
	slowB.Send <- []byte("stuck")
	healthyId := uuid.New()
	healthy := registerClient(t, hub, healthyId, 16)

	hub.Broadcast(testNotification(healthyId))

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, aLive := hub.clients[slowA.UserID]
		_, bLive := hub.clients[slowB.UserID]
		return !aLive && !bLive
	}, time.Second, 5*time.Millisecond)

	select {
	case data := <-healthy.Send:
		assert.Contains(t, string(data), "notification")
	case <-time.After(time.Second):
		t.Fatal("healthy client missed the broadcast")
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub(t)
	userId := uuid.New()

	client := registerClient(t, hub, userId, 1)
	hub.unregister <- client
	// A second unregister, as happens when readPump tears down a client the
	// delivery path already dropped, must be a no-op.
	hub.unregister <- client

	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		_, ok := hub.clients[userId]
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, open := <-client.Send
	assert.False(t, open)
}
