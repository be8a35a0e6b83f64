package assets

import (
	"context"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

type AssetRepository interface {
	GetByID(ctx context.Context, assetID uint) (*model.Asset, error)
	List(ctx context.Context, skip int, limit int) ([]*model.Asset, error)
	Create(ctx context.Context, asset *model.Asset) error
	Updates(ctx context.Context, assetID uint, columns map[string]interface{}) (int64, error)
	Delete(ctx context.Context, assetID uint) (int64, error)
}

type assetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) GetByID(ctx context.Context, assetID uint) (*model.Asset, error) {
	var asset model.Asset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", assetID).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context, skip int, limit int) ([]*model.Asset, error) {
	var assets []*model.Asset
	err := r.db.WithContext(ctx).Order("name").Offset(skip).Limit(limit).Find(&assets).Error
	return assets, err
}

func (r *assetRepository) Create(ctx context.Context, asset *model.Asset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *assetRepository) Updates(ctx context.Context, assetID uint, columns map[string]interface{}) (int64, error) {
	ret := r.db.WithContext(ctx).Model(&model.Asset{}).Where("id = ?", assetID).Updates(columns)
	return ret.RowsAffected, ret.Error
}

func (r *assetRepository) Delete(ctx context.Context, assetID uint) (int64, error) {
	ret := r.db.WithContext(ctx).Delete(&model.Asset{}, "id = ?", assetID)
	return ret.RowsAffected, ret.Error
}
