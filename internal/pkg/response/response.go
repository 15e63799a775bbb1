package response

import "github.com/gofiber/fiber/v3"

// ErrorBody is the failure envelope every endpoint shares.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

const (
	MessageBadRequest     = "Bad request"
	MessageUnauthorized   = "Unauthorized"
	MessageForbidden      = "Forbidden"
	MessageNotFound       = "Not found"
	MessageMethodNotAllow = "Method not allowed"
	MessageDatabaseError  = "Database error occurred"
	MessageServerError    = "Server error occurred"
	MessageUnavailable    = "Service unavailable"
	MessageError          = "Request failed"

	// DetailsWithheld replaces technical details in production.
	DetailsWithheld = "Check server logs"
)

// Success writes body as JSON. Bodies embed `success:true` themselves.
func Success(c fiber.Ctx, status int, body any) error {
	return c.Status(normalizeStatus(status)).JSON(body)
}

func Error(c fiber.Ctx, status int, message, details string) error {
	st := normalizeStatus(status)
	if message == "" {
		message = DefaultMessageForStatus(st)
	}
	return c.Status(st).JSON(ErrorBody{Success: false, Error: message, Details: details})
}

func normalizeStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func DefaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return MessageBadRequest
	case fiber.StatusUnauthorized:
		return MessageUnauthorized
	case fiber.StatusForbidden:
		return MessageForbidden
	case fiber.StatusNotFound:
		return MessageNotFound
	case fiber.StatusMethodNotAllowed:
		return MessageMethodNotAllow
	case fiber.StatusServiceUnavailable:
		return MessageUnavailable
	default:
		if status >= 500 {
			return MessageServerError
		}
		return MessageError
	}
}
