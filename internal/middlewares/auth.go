package middlewares

import (
	"strings"

	"github.com/faeflux/faeflux-one/internal/auth"
	"github.com/faeflux/faeflux-one/internal/rbac"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

const userLocalsKey = "currentUser"

// RequireAuth extracts the bearer token, verifies it as an access token,
// loads the subject and rejects inactive or missing subjects. Any failure
// short-circuits the request with no side effects; failed authentication is
// not written to the audit trail.
func RequireAuth(tokens *auth.TokenService, users auth.UserStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authentication credentials")
		}
		claims, err := tokens.Verify(tokenStr, auth.TokenTypeAccess)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authentication credentials")
		}
		userID := claims.UserID()
		if userID == 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token payload")
		}
		user, err := users.GetUserByID(c.UserContext(), userID)
		if err != nil || user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authentication credentials")
		}
		if !user.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "Inactive user")
		}
		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequirePermission gates a route on a single permission. Must run after
// RequireAuth. A denial produces 403 before the handler touches storage.
func RequirePermission(perm rbac.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}
		if !rbac.HasPermission(user, perm) {
			return fiber.NewError(fiber.StatusForbidden, "Permission denied")
		}
		return c.Next()
	}
}

// CurrentUser returns the authenticated subject stored by RequireAuth, or
// nil on unauthenticated routes.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userLocalsKey).(*model.User)
	return user
}
