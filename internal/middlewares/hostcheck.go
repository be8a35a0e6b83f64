package middlewares

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ValidateHost rejects requests whose Host header does not match the
// configured allow list (exact match or subdomain). Enforcement applies to
// production only so local development works without configuration.
func ValidateHost(allowedHosts []string, environment string) fiber.Handler {
	enforce := environment == "production" && len(allowedHosts) > 0
	return func(c *fiber.Ctx) error {
		if !enforce {
			return c.Next()
		}
		host := c.Hostname()
		for _, allowed := range allowedHosts {
			if host == allowed || strings.HasSuffix(host, "."+allowed) {
				return c.Next()
			}
		}
		slog.Warn("Invalid host header", "host", host)
		return fiber.NewError(fiber.StatusForbidden, "Invalid host")
	}
}
