package mapper

import (
	"encoding/json"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/model"

	"gorm.io/datatypes"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(n.Metadata) > 0 {
		// Malformed metadata is not worth failing a read for.
		_ = json.Unmarshal(n.Metadata, &metadata)
	}

	return &entity.Notification{
		Id:               n.Id,
		UserId:           n.UserId,
		MessageId:        n.MessageId,
		NotificationType: n.NotificationType,
		Title:            n.Title,
		Content:          n.Content,
		Metadata:         metadata,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}

	var metadata datatypes.JSON
	if n.Metadata != nil {
		if raw, err := json.Marshal(n.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Notification{
		Id:               n.Id,
		UserId:           n.UserId,
		MessageId:        n.MessageId,
		NotificationType: n.NotificationType,
		Title:            n.Title,
		Content:          n.Content,
		Metadata:         metadata,
		IsRead:           n.IsRead,
		CreatedAt:        n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(ns []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, len(ns))
	for i, n := range ns {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
