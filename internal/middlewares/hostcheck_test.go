package middlewares

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func hostCheckStatus(t *testing.T, allowedHosts []string, environment string, host string) int {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(ValidateHost(allowedHosts, environment))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req, err := http.NewRequest(http.MethodGet, "/", nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Host = host
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp.StatusCode
}

func TestValidateHostProduction(t *testing.T) {
	allowed := []string{"faeflux.example.com"}

	if status := hostCheckStatus(t, allowed, "production", "faeflux.example.com"); status != http.StatusOK {
		t.Errorf("exact match rejected, status %d", status)
	}
	if status := hostCheckStatus(t, allowed, "production", "api.faeflux.example.com"); status != http.StatusOK {
		t.Errorf("subdomain rejected, status %d", status)
	}
	if status := hostCheckStatus(t, allowed, "production", "evil.example.com"); status != http.StatusForbidden {
		t.Errorf("foreign host accepted, status %d", status)
	}
	if status := hostCheckStatus(t, allowed, "production", "notfaeflux.example.com"); status != http.StatusForbidden {
		t.Errorf("suffix lookalike accepted, status %d", status)
	}
}

func TestValidateHostDevelopmentBypass(t *testing.T) {
	if status := hostCheckStatus(t, []string{"faeflux.example.com"}, "development", "localhost:3000"); status != http.StatusOK {
		t.Errorf("development should not enforce hosts, status %d", status)
	}
	if status := hostCheckStatus(t, nil, "production", "anything.example.com"); status != http.StatusOK {
		t.Errorf("empty allow list should not enforce, status %d", status)
	}
}
