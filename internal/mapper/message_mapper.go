package mapper

import (
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/model"
)

type MessageMapper struct {
	userMapper *UserMapper
}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{
		userMapper: NewUserMapper(),
	}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:              msg.Id,
		Seq:             msg.Seq,
		SenderId:        msg.SenderId,
		ReceiverId:      msg.ReceiverId,
		ParentMessageId: msg.ParentMessageId,
		Content:         msg.Content,
		Timestamp:       msg.Timestamp,
		IsRead:          msg.IsRead,
		Edited:          msg.Edited,
		EditedAt:        msg.EditedAt,
		Sender:          m.userMapper.ToEntity(msg.Sender),
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:              msg.Id,
		Seq:             msg.Seq,
		SenderId:        msg.SenderId,
		ReceiverId:      msg.ReceiverId,
		ParentMessageId: msg.ParentMessageId,
		Content:         msg.Content,
		Timestamp:       msg.Timestamp,
		IsRead:          msg.IsRead,
		Edited:          msg.Edited,
		EditedAt:        msg.EditedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}
