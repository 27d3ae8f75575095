package controller

import (
	"chat-messaging-be/internal/pkg/serverutils"
	"chat-messaging-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router)
	DeletionStats(ctx *fiber.Ctx) error
	DeleteAccount(ctx *fiber.Ctx) error
}

type userController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) IUserController {
	return &userController{
		userService: userService,
	}
}

func (c *userController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/user/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("me/deletion-stats", c.DeletionStats)
	h.Delete("me", c.DeleteAccount)
}

func (c *userController) DeletionStats(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.DeletionStats(ctx.Context(), actorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get deletion stats", res))
}

func (c *userController) DeleteAccount(ctx *fiber.Ctx) error {
	actorId, err := actorFromLocals(ctx)
	if err != nil {
		return err
	}

	res, err := c.userService.DeleteAccount(ctx.Context(), actorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete account", res))
}
