package service

import (
	"context"
	"time"

	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// EditHistoryRecorder snapshots a message's stored content immediately
// before an edit overwrites it. It runs inside the caller's transaction so
// the read-compare-append sequence serializes against concurrent editors;
// the unique (message_id, version) index is the final safety net and
// surfaces as contract.ErrVersionConflict.
type EditHistoryRecorder struct{}

func NewEditHistoryRecorder() *EditHistoryRecorder {
	return &EditHistoryRecorder{}
}

// OnMessageSave compares incoming.Content against the persisted row and
// appends a history snapshot when they differ. It returns the created
// snapshot, or nil when the message is new, gone, or unchanged. On a real
// change it also flips incoming.Edited and stamps EditedAt.
//
// A uuid.Nil editor attributes the edit to the message sender.
func (r *EditHistoryRecorder) OnMessageSave(ctx context.Context, uow unitofwork.UnitOfWork, incoming *entity.Message, editorId uuid.UUID) (*entity.MessageHistory, error) {
	persisted, err := uow.MessageRepository().FindByID(ctx, incoming.Id)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		// Row vanished between the caller's read and this one; nothing to
		// snapshot, the save itself proceeds.
		return nil, nil
	}
	if persisted.Content == incoming.Content {
		return nil, nil
	}

	maxVersion, err := uow.MessageHistoryRepository().MaxVersionForMessage(ctx, incoming.Id)
	if err != nil {
		return nil, err
	}

	editedBy := editorId
	if editedBy == uuid.Nil {
		editedBy = persisted.SenderId
	}

	now := time.Now()
	history := &entity.MessageHistory{
		Id:         uuid.New(),
		MessageId:  incoming.Id,
		OldContent: persisted.Content,
		EditedById: editedBy,
		EditedAt:   now,
		Version:    maxVersion + 1,
	}
	if err := uow.MessageHistoryRepository().Create(ctx, history); err != nil {
		return nil, err
	}

	incoming.Edited = true
	incoming.EditedAt = &now
	return history, nil
}
