package serverutils

import (
	"errors"

	"ai-visionboard-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts errors bubbled up from controllers
// into the standard JSON envelope. Validation errors are the client's
// fault; everything else is ours.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			switch appErr.Kind {
			case apperror.KindValidation:
				return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(appErr.Message))
			default:
				return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(appErr.Message))
			}
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error"))
	}
}
