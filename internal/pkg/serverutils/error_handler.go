package serverutils

import (
	"errors"

	"ai-recruiting-be/internal/pkg/logger"
	"ai-recruiting-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// NewErrorHandler maps domain errors onto HTTP statuses. Anything unmapped
// is a 500 with a generic body so internals never leak to clients.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var validationErr *extract.ValidationError
		if errors.As(err, &validationErr) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(validationErr.Error(), nil))
		}

		var extractionErr *extract.ExtractionError
		if errors.As(err, &extractionErr) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(extractionErr.Error(), nil))
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse("resource not found", nil))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message, nil))
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("internal server error", nil))
	}
}
