package serverutils

import (
	"errors"

	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders any error returned by a handler as the error envelope. Classified
// errors keep their message; unclassified ones are logged and hidden behind a generic 500.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			status := apperror.HTTPStatus(appErr.Kind)
			if status >= fiber.StatusInternalServerError {
				log.Error("HTTP", appErr.Message, map[string]interface{}{
					"path":  ctx.Path(),
					"kind":  string(appErr.Kind),
					"error": err.Error(),
				})
			}
			return ctx.Status(status).JSON(ErrorResponse(status, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
