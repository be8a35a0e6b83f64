package sites

import (
	"context"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

type SiteRepository interface {
	GetByID(ctx context.Context, siteID uint) (*model.Site, error)
	List(ctx context.Context, skip int, limit int) ([]*model.Site, error)
	Create(ctx context.Context, site *model.Site) error
	Updates(ctx context.Context, siteID uint, columns map[string]interface{}) (int64, error)
	Delete(ctx context.Context, siteID uint) (int64, error)
}

type siteRepository struct {
	db *gorm.DB
}

func NewSiteRepository(db *gorm.DB) SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) GetByID(ctx context.Context, siteID uint) (*model.Site, error) {
	var site model.Site
	if err := r.db.WithContext(ctx).First(&site, "id = ?", siteID).Error; err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepository) List(ctx context.Context, skip int, limit int) ([]*model.Site, error) {
	var sites []*model.Site
	err := r.db.WithContext(ctx).Order("name").Offset(skip).Limit(limit).Find(&sites).Error
	return sites, err
}

func (r *siteRepository) Create(ctx context.Context, site *model.Site) error {
	return r.db.WithContext(ctx).Create(site).Error
}

func (r *siteRepository) Updates(ctx context.Context, siteID uint, columns map[string]interface{}) (int64, error) {
	ret := r.db.WithContext(ctx).Model(&model.Site{}).Where("id = ?", siteID).Updates(columns)
	return ret.RowsAffected, ret.Error
}

func (r *siteRepository) Delete(ctx context.Context, siteID uint) (int64, error) {
	ret := r.db.WithContext(ctx).Delete(&model.Site{}, "id = ?", siteID)
	return ret.RowsAffected, ret.Error
}
