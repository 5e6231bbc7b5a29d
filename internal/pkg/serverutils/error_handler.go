package serverutils

import (
	"errors"

	"ai-mediagen-be/internal/pkg/apperror"
	"ai-mediagen-be/internal/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error to the HTTP status it is rendered with.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return fiber.StatusBadRequest
	}

	switch apperror.KindOf(err) {
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindState:
		return fiber.StatusConflict
	case apperror.KindExternalService, apperror.KindGeneration, apperror.KindStorage:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders errors returned by handlers in the response envelope
// and logs server-side failures once.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code := StatusFor(err)
		body := ErrorResponse(code, err.Error())

		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			body.Message = "Validation failed"
			body.Errors = validationMessages(validationErrs)
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"error":  err,
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": code,
			})
			if code == fiber.StatusInternalServerError {
				body.Message = "Internal server error"
			}
		}

		return ctx.Status(code).JSON(body)
	}
}
