package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger logs each HTTP request through logger with the fields
// request_id, method, path, status and latency (milliseconds).
// Server errors log at error level and client errors at warn.
func Logger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		level := zapcore.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = zapcore.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = zapcore.WarnLevel
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		if ce := logger.Check(level, "http_request"); ce != nil {
			fields := []zap.Field{
				zap.String("request_id", rid),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Float64("latency", float64(time.Since(start).Microseconds())/1000),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
			}
			ce.Write(fields...)
		}

		return err
	}
}
