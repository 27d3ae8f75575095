package mapper

import (
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/model"
)

type MessageHistoryMapper struct{}

func NewMessageHistoryMapper() *MessageHistoryMapper {
	return &MessageHistoryMapper{}
}

func (m *MessageHistoryMapper) ToEntity(h *model.MessageHistory) *entity.MessageHistory {
	if h == nil {
		return nil
	}
	return &entity.MessageHistory{
		Id:         h.Id,
		MessageId:  h.MessageId,
		OldContent: h.OldContent,
		EditedById: h.EditedById,
		EditedAt:   h.EditedAt,
		Version:    h.Version,
	}
}

func (m *MessageHistoryMapper) ToModel(h *entity.MessageHistory) *model.MessageHistory {
	if h == nil {
		return nil
	}
	return &model.MessageHistory{
		Id:         h.Id,
		MessageId:  h.MessageId,
		OldContent: h.OldContent,
		EditedById: h.EditedById,
		EditedAt:   h.EditedAt,
		Version:    h.Version,
	}
}

func (m *MessageHistoryMapper) ToEntities(hs []*model.MessageHistory) []*entity.MessageHistory {
	entities := make([]*entity.MessageHistory, len(hs))
	for i, h := range hs {
		entities[i] = m.ToEntity(h)
	}
	return entities
}
