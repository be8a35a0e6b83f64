package api

import (
	"errors"
	"fmt"

	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/internal/sites"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

type SiteHandler struct {
	siteService *sites.SiteService
	recorder    *audit.Recorder
}

func NewSiteHandler(siteService *sites.SiteService, recorder *audit.Recorder) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
		recorder:    recorder,
	}
}

func (h *SiteHandler) GetSites(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	list, err := h.siteService.ListSites(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(list))
}

func (h *SiteHandler) GetSite(c *fiber.Ctx) error {
	siteID, err := parseID(c)
	if err != nil {
		return err
	}
	site, err := h.siteService.GetSiteByID(c.UserContext(), siteID)
	if errors.Is(err, sites.ErrSiteNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Site not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(site))
}

func (h *SiteHandler) PostSite(c *fiber.Ctx) error {
	var req sites.CreateSiteOptions
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}
	site, err := h.siteService.CreateSite(c.UserContext(), req)
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionCreate, "site", &site.ID, fmt.Sprintf("Created site: %s", site.Name)); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(NewDataResponse(site))
}

func (h *SiteHandler) PutSite(c *fiber.Ctx) error {
	siteID, err := parseID(c)
	if err != nil {
		return err
	}
	var patch sites.SitePatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	site, err := h.siteService.UpdateSite(c.UserContext(), siteID, patch)
	if errors.Is(err, sites.ErrSiteNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Site not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionUpdate, "site", &site.ID, fmt.Sprintf("Updated site: %s", site.Name)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(site))
}

func (h *SiteHandler) DeleteSite(c *fiber.Ctx) error {
	siteID, err := parseID(c)
	if err != nil {
		return err
	}
	err = h.siteService.DeleteSite(c.UserContext(), siteID)
	if errors.Is(err, sites.ErrSiteNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Site not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionDelete, "site", &siteID, fmt.Sprintf("Deleted site %d", siteID)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(StatusResponse{Status: "ok", Message: "Site deleted successfully"}))
}
