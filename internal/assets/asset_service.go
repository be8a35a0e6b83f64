package assets

import (
	"context"
	"errors"
	"time"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

var ErrAssetNotFound = errors.New("asset not found")

type CreateAssetOptions struct {
	Name           string            `json:"name"`
	AssetType      model.AssetType   `json:"assetType"`
	Status         model.AssetStatus `json:"status"`
	SerialNumber   string            `json:"serialNumber"`
	Model          string            `json:"model"`
	Manufacturer   string            `json:"manufacturer"`
	PurchaseDate   *time.Time        `json:"purchaseDate"`
	WarrantyExpiry *time.Time        `json:"warrantyExpiry"`
	Cost           *float64          `json:"cost"`
	Location       string            `json:"location"`
	Notes          string            `json:"notes"`
	SiteID         *uint             `json:"siteId"`
}

type AssetPatch struct {
	Name           *string            `json:"name"`
	AssetType      *model.AssetType   `json:"assetType"`
	Status         *model.AssetStatus `json:"status"`
	SerialNumber   *string            `json:"serialNumber"`
	Model          *string            `json:"model"`
	Manufacturer   *string            `json:"manufacturer"`
	PurchaseDate   *time.Time         `json:"purchaseDate"`
	WarrantyExpiry *time.Time         `json:"warrantyExpiry"`
	Cost           *float64           `json:"cost"`
	Location       *string            `json:"location"`
	Notes          *string            `json:"notes"`
	SiteID         *uint              `json:"siteId"`
}

type AssetService struct {
	assetRepo AssetRepository
}

func NewAssetService(assetRepo AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

func (s *AssetService) GetAssetByID(ctx context.Context, assetID uint) (*model.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAssetNotFound
	}
	return asset, err
}

func (s *AssetService) ListAssets(ctx context.Context, skip int, limit int) ([]*model.Asset, error) {
	return s.assetRepo.List(ctx, skip, limit)
}

func (s *AssetService) CreateAsset(ctx context.Context, opts CreateAssetOptions, createdByID uint) (*model.Asset, error) {
	status := opts.Status
	if status == "" {
		status = model.AssetStatusActive
	}
	asset := model.Asset{
		Name:           opts.Name,
		AssetType:      opts.AssetType,
		Status:         status,
		SerialNumber:   opts.SerialNumber,
		Model:          opts.Model,
		Manufacturer:   opts.Manufacturer,
		PurchaseDate:   opts.PurchaseDate,
		WarrantyExpiry: opts.WarrantyExpiry,
		Cost:           opts.Cost,
		Location:       opts.Location,
		Notes:          opts.Notes,
		SiteID:         opts.SiteID,
		CreatedByID:    createdByID,
	}
	if err := s.assetRepo.Create(ctx, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (s *AssetService) UpdateAsset(ctx context.Context, assetID uint, patch AssetPatch) (*model.Asset, error) {
	columns := map[string]interface{}{}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.AssetType != nil {
		columns["asset_type"] = *patch.AssetType
	}
	if patch.Status != nil {
		columns["status"] = *patch.Status
	}
	if patch.SerialNumber != nil {
		columns["serial_number"] = *patch.SerialNumber
	}
	if patch.Model != nil {
		columns["model"] = *patch.Model
	}
	if patch.Manufacturer != nil {
		columns["manufacturer"] = *patch.Manufacturer
	}
	if patch.PurchaseDate != nil {
		columns["purchase_date"] = *patch.PurchaseDate
	}
	if patch.WarrantyExpiry != nil {
		columns["warranty_expiry"] = *patch.WarrantyExpiry
	}
	if patch.Cost != nil {
		columns["cost"] = *patch.Cost
	}
	if patch.Location != nil {
		columns["location"] = *patch.Location
	}
	if patch.Notes != nil {
		columns["notes"] = *patch.Notes
	}
	if patch.SiteID != nil {
		columns["site_id"] = *patch.SiteID
	}
	if len(columns) > 0 {
		affected, err := s.assetRepo.Updates(ctx, assetID, columns)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrAssetNotFound
		}
	}
	return s.GetAssetByID(ctx, assetID)
}

func (s *AssetService) DeleteAsset(ctx context.Context, assetID uint) error {
	affected, err := s.assetRepo.Delete(ctx, assetID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAssetNotFound
	}
	return nil
}
