package api

import (
	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/internal/middlewares"
	"github.com/faeflux/faeflux-one/model"
	"github.com/faeflux/faeflux-one/params"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"
)

func pagination(c *fiber.Ctx) (skip int, limit int) {
	skip = cast.ToInt(c.Query("skip"))
	if skip < 0 {
		skip = 0
	}
	limit = cast.ToInt(c.Query("limit"))
	if limit < 1 || limit > params.MaxPageSize {
		limit = params.DefaultPageSize
	}
	return skip, limit
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := cast.ToUint64E(c.Params("id"))
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

// recordAudit appends an audit record for a privileged mutation performed by
// the authenticated subject. A failed audit write fails the whole request.
func recordAudit(c *fiber.Ctx, recorder *audit.Recorder, action model.AuditAction, resourceType string, resourceID *uint, details string) error {
	var userID *uint
	if user := middlewares.CurrentUser(c); user != nil {
		id := user.ID
		userID = &id
	}
	return recorder.Record(c.UserContext(), audit.Entry{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
		IPAddress:    c.IP(),
		UserAgent:    c.Get(fiber.HeaderUserAgent),
	})
}
