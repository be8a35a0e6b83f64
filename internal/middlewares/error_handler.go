package middlewares

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the central fiber error handler. Handlers surface typed
// failures as *fiber.Error; anything else is logged and returned as an
// opaque 500 so internal detail never leaks.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}
	if code == fiber.StatusInternalServerError {
		slog.Error("Unhandled error", "path", ctx.Path(), "error", err)
		message = "Internal server error"
	}
	return ctx.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}
