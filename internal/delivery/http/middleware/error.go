package middleware

import (
	"errors"
	"fmt"

	"facility-registry/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type AppError struct {
	StatusCode int
	Message    string
	// Details is shown to clients on 4xx responses, and on 5xx outside production.
	Details string
	Cause   error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, details string, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Details: details, Cause: cause}
}

type ErrorMiddleware struct {
	logger     *zap.Logger
	production bool
}

func NewErrorMiddleware(logger *zap.Logger, production bool) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger.Named("http"), production: production}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				cause := fmt.Errorf("panic: %v", r)
				m.logger.Error("panic recovered", zap.String("path", c.Path()), zap.Error(cause))
				err = m.render(c, fiber.StatusInternalServerError, response.MessageServerError, "", cause)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}
		return m.Handle(c, err)
	}
}

// Handle renders err as the failure envelope. It doubles as the fiber ErrorHandler
// so errors raised outside the middleware chain share the format.
func (m *ErrorMiddleware) Handle(c fiber.Ctx, err error) error {
	status, msg, details := normalizeError(err)
	if status >= 500 {
		m.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	return m.render(c, status, msg, details, err)
}

func (m *ErrorMiddleware) render(c fiber.Ctx, status int, msg, details string, cause error) error {
	if status >= 500 {
		switch {
		case m.production:
			details = response.DetailsWithheld
		case details == "" && cause != nil:
			details = rootCause(cause).Error()
		}
	}
	return response.Error(c, status, msg, details)
}

func normalizeError(err error) (int, string, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}
		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessageForStatus(status)
		}
		return status, msg, appErr.Details
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 {
			status = fiber.StatusInternalServerError
		}
		if status >= 500 {
			return status, response.MessageServerError, ""
		}
		return status, response.DefaultMessageForStatus(status), ""
	}

	return fiber.StatusInternalServerError, response.MessageServerError, ""
}

// rootCause skips AppError wrappers so details name the underlying failure.
func rootCause(err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Cause != nil {
		return appErr.Cause
	}
	return err
}
