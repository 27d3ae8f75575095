package service

import (
	"context"

	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/entity"
	"chat-messaging-be/internal/repository/unitofwork"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IThreadService interface {
	// GetThreadRoot resolves the root message of the thread containing the
	// given message.
	GetThreadRoot(ctx context.Context, actorId, messageId uuid.UUID) (*dto.MessageResponse, error)
	// GetThread returns the whole thread: root plus the nested reply tree,
	// siblings ordered oldest first.
	GetThread(ctx context.Context, actorId, messageId uuid.UUID) (*dto.GetThreadResponse, error)
}

type threadService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewThreadService(uowFactory unitofwork.RepositoryFactory) IThreadService {
	return &threadService{uowFactory: uowFactory}
}

func (s *threadService) GetThreadRoot(ctx context.Context, actorId, messageId uuid.UUID) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	root, err := s.lookupRoot(ctx, uow, actorId, messageId)
	if err != nil {
		return nil, err
	}
	return toMessageResponse(root), nil
}

func (s *threadService) GetThread(ctx context.Context, actorId, messageId uuid.UUID) (*dto.GetThreadResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	root, err := s.lookupRoot(ctx, uow, actorId, messageId)
	if err != nil {
		return nil, err
	}

	replies, err := s.buildReplies(ctx, uow, root)
	if err != nil {
		return nil, err
	}

	return &dto.GetThreadResponse{
		Root:    *toMessageResponse(root),
		Replies: toThreadNodeResponses(replies),
	}, nil
}

func (s *threadService) lookupRoot(ctx context.Context, uow unitofwork.UnitOfWork, actorId, messageId uuid.UUID) (*entity.Message, error) {
	msg, err := uow.MessageRepository().FindByID(ctx, messageId)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "message not found")
	}
	if !msg.IsParticipant(actorId) {
		return nil, fiber.NewError(fiber.StatusForbidden, "only participants may view this thread")
	}

	// Walk up the parent chain iteratively. The seen set guards against a
	// corrupted parent cycle turning this into an infinite loop.
	seen := map[uuid.UUID]bool{msg.Id: true}
	for msg.ParentMessageId != nil {
		parent, err := uow.MessageRepository().FindByID(ctx, *msg.ParentMessageId)
		if err != nil {
			return nil, err
		}
		if parent == nil || seen[parent.Id] {
			break
		}
		seen[parent.Id] = true
		msg = parent
	}
	return msg, nil
}

// buildReplies assembles the reply tree below root with an explicit
// worklist, so arbitrarily deep threads never blow the stack. Depth 0 is a
// direct reply to the root.
func (s *threadService) buildReplies(ctx context.Context, uow unitofwork.UnitOfWork, root *entity.Message) ([]*entity.ThreadNode, error) {
	type frame struct {
		parentId uuid.UUID
		depth    int
		attach   *[]*entity.ThreadNode
	}

	replies := []*entity.ThreadNode{}
	visited := map[uuid.UUID]bool{root.Id: true}
	queue := []frame{{parentId: root.Id, depth: 0, attach: &replies}}

	for len(queue) > 0 {
		f := queue[0]
		queue = queue[1:]

		children, err := uow.MessageRepository().FindByParentID(ctx, f.parentId)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child.Id] {
				continue
			}
			visited[child.Id] = true

			node := &entity.ThreadNode{
				Message: child,
				Depth:   f.depth,
				Replies: []*entity.ThreadNode{},
			}
			*f.attach = append(*f.attach, node)
			queue = append(queue, frame{parentId: child.Id, depth: f.depth + 1, attach: &node.Replies})
		}
	}
	return replies, nil
}

func toThreadNodeResponses(nodes []*entity.ThreadNode) []*dto.ThreadNodeResponse {
	type pair struct {
		src *entity.ThreadNode
		dst *dto.ThreadNodeResponse
	}

	out := make([]*dto.ThreadNodeResponse, len(nodes))
	work := make([]pair, 0, len(nodes))
	for i, n := range nodes {
		out[i] = &dto.ThreadNodeResponse{
			Message: *toMessageResponse(n.Message),
			Depth:   n.Depth,
			Replies: []*dto.ThreadNodeResponse{},
		}
		work = append(work, pair{src: n, dst: out[i]})
	}

	for len(work) > 0 {
		p := work[len(work)-1]
		work = work[:len(work)-1]
		for _, child := range p.src.Replies {
			c := &dto.ThreadNodeResponse{
				Message: *toMessageResponse(child.Message),
				Depth:   child.Depth,
				Replies: []*dto.ThreadNodeResponse{},
			}
			p.dst.Replies = append(p.dst.Replies, c)
			work = append(work, pair{src: child, dst: c})
		}
	}
	return out
}
