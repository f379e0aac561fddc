package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"netlister/internal/logging"
)

const (
	// RequestIDHeader is the standard header name used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the key used to store the request ID in Fiber's context locals.
	RequestIDLocalKey = "request_id"
)

// RequestID ensures every request has a request ID.
//
// Behavior:
// - Reads X-Request-ID from the incoming request header, generating a UUID if missing.
// - Stores the value in Fiber locals under RequestIDLocalKey and in the user context.
// - Echoes it in the X-Request-ID response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.SetUserContext(logging.WithRequestID(c.UserContext(), id))
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
