package controller

import (
	"chat-messaging-be/internal/dto"
	"chat-messaging-be/internal/pkg/serverutils"
	"chat-messaging-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Send(ctx *fiber.Ctx) error
	Edit(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Unread(ctx *fiber.Ctx) error
	UnreadCount(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Thread(ctx *fiber.Ctx) error
	Conversation(ctx *fiber.Ctx) error
}

type messageController struct {
	messageService service.IMessageService
	threadService  service.IThreadService
	unreadService  service.IUnreadQueryService
}

func NewMessageController(
	messageService service.IMessageService,
	threadService service.IThreadService,
	unreadService service.IUnreadQueryService,
) IMessageController {
	return &messageController{
		messageService: messageService,
		threadService:  threadService,
		unreadService:  unreadService,
	}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Use(serverutils.JwtMiddleware)
	// Static paths first so they never collide with ":id".
	h.Get("unread", c.Unread)
	h.Get("unread/count", c.UnreadCount)
	h.Post("read", c.MarkRead)
	h.Get("conversation/:userId", c.Conversation)
	h.Post("", c.Send)
	h.Put(":id", c.Edit)
	h.Delete(":id", c.Delete)
	h.Get(":id/history", c.History)
	h.Get(":id/thread", c.Thread)
}

func actorFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userId, nil
}

func paramUUID(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

func (c *messageController) Send(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.Send(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *messageController) Edit(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.EditMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.messageService.Edit(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success edit message", res))
}

func (c *messageController) Delete(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.messageService.Delete(ctx.Context(), actorId, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete message", nil))
}

func (c *messageController) Unread(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.unreadService.UnreadFor(ctx.Context(), actorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get unread messages", res))
}

func (c *messageController) UnreadCount(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}

	count, err := c.unreadService.UnreadCount(ctx.Context(), actorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get unread count", dto.UnreadCountResponse{Count: count}))
}

func (c *messageController) MarkRead(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.MarkReadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.unreadService.MarkRead(ctx.Context(), actorId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success mark messages read", res))
}

func (c *messageController) History(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.messageService.GetHistory(ctx.Context(), actorId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get edit history", res))
}

func (c *messageController) Thread(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}
	id, err := paramUUID(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.threadService.GetThread(ctx.Context(), actorId, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get thread", res))
}

func (c *messageController) Conversation(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}
	otherId, err := paramUUID(ctx, "userId")
	if err != nil {
		return err
	}

	res, err := c.messageService.GetConversation(ctx.Context(), actorId, otherId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get conversation", res))
}
