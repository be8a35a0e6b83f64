package api

import (
	"errors"
	"fmt"

	"github.com/faeflux/faeflux-one/internal/assets"
	"github.com/faeflux/faeflux-one/internal/audit"
	"github.com/faeflux/faeflux-one/internal/middlewares"
	"github.com/faeflux/faeflux-one/model"
	"github.com/gofiber/fiber/v2"
)

type AssetHandler struct {
	assetService *assets.AssetService
	recorder     *audit.Recorder
}

func NewAssetHandler(assetService *assets.AssetService, recorder *audit.Recorder) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
		recorder:     recorder,
	}
}

func (h *AssetHandler) GetAssets(c *fiber.Ctx) error {
	skip, limit := pagination(c)
	list, err := h.assetService.ListAssets(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(list))
}

func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	assetID, err := parseID(c)
	if err != nil {
		return err
	}
	asset, err := h.assetService.GetAssetByID(c.UserContext(), assetID)
	if errors.Is(err, assets.ErrAssetNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Asset not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(NewDataResponse(asset))
}

func (h *AssetHandler) PostAsset(c *fiber.Ctx) error {
	var req assets.CreateAssetOptions
	if err := c.BodyParser(&req); err != nil || req.Name == "" || req.AssetType == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name and assetType are required")
	}
	actor := middlewares.CurrentUser(c)
	asset, err := h.assetService.CreateAsset(c.UserContext(), req, actor.ID)
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionCreate, "asset", &asset.ID, fmt.Sprintf("Created asset: %s", asset.Name)); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(NewDataResponse(asset))
}

func (h *AssetHandler) PutAsset(c *fiber.Ctx) error {
	assetID, err := parseID(c)
	if err != nil {
		return err
	}
	var patch assets.AssetPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	asset, err := h.assetService.UpdateAsset(c.UserContext(), assetID, patch)
	if errors.Is(err, assets.ErrAssetNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Asset not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionUpdate, "asset", &asset.ID, fmt.Sprintf("Updated asset: %s", asset.Name)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(asset))
}

func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	assetID, err := parseID(c)
	if err != nil {
		return err
	}
	err = h.assetService.DeleteAsset(c.UserContext(), assetID)
	if errors.Is(err, assets.ErrAssetNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Asset not found")
	}
	if err != nil {
		return err
	}
	if err := recordAudit(c, h.recorder, model.AuditActionDelete, "asset", &assetID, fmt.Sprintf("Deleted asset %d", assetID)); err != nil {
		return err
	}
	return c.JSON(NewDataResponse(StatusResponse{Status: "ok", Message: "Asset deleted successfully"}))
}
