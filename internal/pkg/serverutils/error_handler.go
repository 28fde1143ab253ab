package serverutils

import (
	"errors"

	"rental-marketplace-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a domain error kind onto an HTTP status.
func StatusFor(err error) int {
	switch apperror.KindOf(err) {
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindInvalidState, apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindForbidden:
		return fiber.StatusForbidden
	case apperror.KindValidation:
		return fiber.StatusUnprocessableEntity
	case apperror.KindInvalidSignature:
		return fiber.StatusUnauthorized
	case apperror.KindExternalService:
		return fiber.StatusBadGateway
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

// HandleError renders err as the standard error body.
func HandleError(ctx *fiber.Ctx, err error) error {
	status := StatusFor(err)
	body := ErrorResponse(status, "Internal server error")

	var appErr *apperror.Error
	var fe *fiber.Error
	switch {
	case errors.As(err, &appErr):
		body.Kind = string(appErr.Kind)
		if status != fiber.StatusInternalServerError {
			body.Message = appErr.Message
		}
	case errors.As(err, &fe):
		body.Message = fe.Message
	}
	return ctx.Status(status).JSON(body)
}

// ErrorHandlerMiddleware turns errors returned by later handlers into JSON.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return HandleError(ctx, err)
	}
}
