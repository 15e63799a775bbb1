package handler

import (
	"errors"

	"facility-registry/internal/delivery/http/middleware"
	"facility-registry/internal/pkg/response"
	"facility-registry/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// mapUsecaseError turns usecase sentinels into client-facing AppErrors.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var msgErr *usecase.MessageError
	message := ""
	if errors.As(err, &msgErr) {
		message = msgErr.Message
	}

	switch {
	case errors.Is(err, usecase.ErrMissingCategory):
		return middleware.NewAppError(fiber.StatusBadRequest, "Missing category parameter", "", err)
	case errors.Is(err, usecase.ErrUnsupportedCategory):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unsupported category parameter", "", err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, orDefault(message, response.MessageBadRequest), "", err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, orDefault(message, response.MessageNotFound), "", err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid username or password", "", err)
	case errors.Is(err, usecase.ErrStorage):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageDatabaseError, "", err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageServerError, "", err)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
