package middleware

import (
	"mime"

	"github.com/gofiber/fiber/v2"
)

// RequireJSON rejects requests whose body is not declared as JSON with 415.
func RequireJSON() fiber.Handler {
	return func(c *fiber.Ctx) error {
		mt, _, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
		if err != nil || mt != fiber.MIMEApplicationJSON {
			return fiber.NewError(fiber.StatusUnsupportedMediaType, "Please upload a JSON file")
		}
		return c.Next()
	}
}
