package implementation

import (
	"context"
	"errors"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/mapper"
	"chat-messaging-be/internal/model"
	"chat-messaging-be/internal/repository/contract"
	"chat-messaging-be/internal/repository/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, msg *entity.Message) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) Update(ctx context.Context, msg *entity.Message) error {
	m := r.mapper.ToModel(msg)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*msg = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, "id = ?", id).Error
}

func (r *MessageRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*entity.Message, error) {
	var m model.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MessageRepositoryImpl) FindByParentID(ctx context.Context, parentId uuid.UUID) ([]*entity.Message, error) {
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Scopes(scope.ByParent(parentId), scope.ThreadOrder()).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) FindUnreadForReceiver(ctx context.Context, receiverId uuid.UUID) ([]*entity.Message, error) {
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Scopes(scope.ByReceiver(receiverId), scope.Unread(), scope.NewestFirst("timestamp"), scope.NewestFirst("seq")).
		Preload("Sender").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) CountUnreadForReceiver(ctx context.Context, receiverId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Scopes(scope.ByReceiver(receiverId), scope.Unread()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *MessageRepositoryImpl) MarkRead(ctx context.Context, receiverId uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Message{}).
		Scopes(scope.ByReceiver(receiverId), scope.Unread())
	if len(ids) > 0 {
		query = query.Where("id IN ?", ids)
	}
	result := query.Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *MessageRepositoryImpl) FindConversation(ctx context.Context, userA, userB uuid.UUID) ([]*entity.Message, error) {
	var models []*model.Message
	err := r.db.WithContext(ctx).
		Scopes(scope.BetweenUsers(userA, userB), scope.ThreadOrder()).
		Preload("Sender").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageRepositoryImpl) CountBySender(ctx context.Context, senderId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("sender_id = ?", senderId).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) CountByReceiver(ctx context.Context, receiverId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Scopes(scope.ByReceiver(receiverId)).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) DistinctReceiversFromSender(ctx context.Context, senderId uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Distinct("receiver_id").
		Where("sender_id = ?", senderId).
		Pluck("receiver_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *MessageRepositoryImpl) DeleteAllForUser(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("sender_id = ? OR receiver_id = ?", userId, userId).
		Delete(&model.Message{}).Error
}
