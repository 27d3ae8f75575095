package serverutils

import (
	"errors"

	"chat-messaging-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware normalizes errors escaping the handlers into the
// JSON response envelope. Version conflicts from the history table map to
// 409 so callers can decide whether to retry.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if errors.Is(err, contract.ErrVersionConflict) {
			return ctx.Status(fiber.StatusConflict).JSON(ErrorResponse("message was edited concurrently, please retry"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
