package api

import (
	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

type AuditHandler struct {
	recorder *audit.Recorder
}

func NewAuditHandler(recorder *audit.Recorder) *AuditHandler {
	return &AuditHandler{recorder: recorder}
}

func (h *AuditHandler) GetAuditLogs(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	logs, err := h.recorder.List(c.UserContext(), audit.ListOptions{
		ResourceType: c.Query("resourceType"),
		Action:       model.AuditAction(c.Query("action")),
		Skip:         skip,
		Limit:        limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(logs))
}
