package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// deliveryChannel is the Redis pub/sub channel used to fan notifications
// out to other instances when the receiver is connected elsewhere.
const deliveryChannel = "delivery_events"

type Hub struct {
	// UserID -> connected clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Optional: nil means single-instance mode, local delivery only.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			// Sole owner of close(client.Send). Senders that find a full
			// buffer only hand the client over here; closing in two places
			// would panic on the second close.
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Last client disconnected", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

func envelope(notification *entity.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": map[string]interface{}{
			"id":                notification.Id,
			"message_id":        notification.MessageId,
			"notification_type": notification.NotificationType,
			"title":             notification.Title,
			"content":           notification.Content,
			"metadata":          notification.Metadata,
			"is_read":           notification.IsRead,
			"created_at":        notification.CreatedAt,
		},
	})
	return data
}

// Send pushes the notification to every live session of the user, locally
// and (via Redis) on other instances. Implements service.NotificationDelivery.
func (h *Hub) Send(userID uuid.UUID, notification *entity.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
				h.unregister <- client
			}
		}
	}

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        data,
		})
		h.rdb.Publish(context.Background(), deliveryChannel, payload)
	}
}

// Broadcast pushes the notification to every connected client.
func (h *Hub) Broadcast(notification *entity.Notification) {
	data := envelope(notification)

	// Unregistering needs the write lock in Run, so slow clients are
	// collected under the read lock and handed over after releasing it.
	h.mu.RLock()
	var slow []*Client
	for _, clients := range h.clients {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				slow = append(slow, client)
			}
		}
	}
	h.mu.RUnlock()
	for _, client := range slow {
		h.unregister <- client
	}

	if h.rdb != nil {
		payload, _ := json.Marshal(map[string]interface{}{
			"target_user_id": "*",
			"message":        data,
		})
		h.rdb.Publish(context.Background(), deliveryChannel, payload)
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, deliveryChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID string          `json:"target_user_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetUserID == "*" {
			h.mu.RLock()
			var slow []*Client
			for _, clients := range h.clients {
				for _, client := range clients {
					select {
					case client.Send <- payload.Message:
					default:
						slow = append(slow, client)
					}
				}
			}
			h.mu.RUnlock()
			for _, client := range slow {
				h.unregister <- client
			}
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					h.unregister <- client
				}
			}
		}
	}
}
