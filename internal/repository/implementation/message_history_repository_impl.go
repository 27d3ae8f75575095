package implementation

import (
	"context"
	"errors"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/mapper"
	"chat-messaging-be/internal/model"
	"chat-messaging-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE for unique constraint violations.
const uniqueViolationCode = "23505"

type MessageHistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageHistoryMapper
}

func NewMessageHistoryRepository(db *gorm.DB) contract.MessageHistoryRepository {
	return &MessageHistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageHistoryMapper(),
	}
}

func (r *MessageHistoryRepositoryImpl) Create(ctx context.Context, history *entity.MessageHistory) error {
	m := r.mapper.ToModel(history)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return contract.ErrVersionConflict
		}
		return err
	}
	*history = *r.mapper.ToEntity(m)
	return nil
}

func (r *MessageHistoryRepositoryImpl) FindByMessageID(ctx context.Context, messageId uuid.UUID) ([]*entity.MessageHistory, error) {
	var models []*model.MessageHistory
	err := r.db.WithContext(ctx).
		Where("message_id = ?", messageId).
		Order("version DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *MessageHistoryRepositoryImpl) CountByMessageID(ctx context.Context, messageId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MessageHistory{}).
		Where("message_id = ?", messageId).
		Count(&count).Error
	return count, err
}

func (r *MessageHistoryRepositoryImpl) MaxVersionForMessage(ctx context.Context, messageId uuid.UUID) (int, error) {
	var maxVersion *int
	err := r.db.WithContext(ctx).Model(&model.MessageHistory{}).
		Where("message_id = ?", messageId).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	if maxVersion == nil {
		return 0, nil
	}
	return *maxVersion, nil
}

func (r *MessageHistoryRepositoryImpl) CountByEditor(ctx context.Context, editorId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.MessageHistory{}).
		Where("edited_by_id = ?", editorId).
		Count(&count).Error
	return count, err
}

func (r *MessageHistoryRepositoryImpl) DeleteAllByEditor(ctx context.Context, editorId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("edited_by_id = ?", editorId).
		Delete(&model.MessageHistory{}).Error
}
