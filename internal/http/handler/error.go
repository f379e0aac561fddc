package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"netlister/internal/http/middleware"
)

// errorPayload is the standardized error response body. Msg repeats the
// human-readable message at the top level, where clients look for it.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Msg       string        `json:"msg"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Msg:       message,
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "BODY_TOO_LARGE", "request body too large")
		case fiber.StatusUnsupportedMediaType:
			return writeError(c, status, "UNSUPPORTED_MEDIA_TYPE", fe.Message)
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
