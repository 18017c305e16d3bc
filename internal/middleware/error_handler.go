package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/crowdbase-dev/crowdbase/internal/apperror"
)

// ErrorHandler maps domain errors to HTTP responses. Validation errors carry
// their code so clients can switch on it; storage errors are logged and
// reported as a generic 500, so the underlying driver message never leaves
// the process.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		status := appErr.StatusCode()
		if appErr.Type == apperror.Storage {
			slog.Error("storage failure", "method", c.Method(), "path", c.Path(), "error", appErr.Error())
			return c.Status(status).JSON(fiber.Map{
				"error":   true,
				"message": "Internal server error",
			})
		}
		body := fiber.Map{
			"error":   true,
			"message": appErr.Message,
		}
		if appErr.Code != "" {
			body["code"] = appErr.Code
		}
		return c.Status(status).JSON(body)
	}

	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
