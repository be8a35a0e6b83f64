package sites

import (
	"context"
	"errors"

	"github.com/faeflux/faeflux-one/model"
	"gorm.io/gorm"
)

var ErrSiteNotFound = errors.New("site not found")

type CreateSiteOptions struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

type SitePatch struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postalCode"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	IsActive   *bool   `json:"isActive"`
}

type SiteService struct {
	siteRepo SiteRepository
}

func NewSiteService(siteRepo SiteRepository) *SiteService {
	return &SiteService{siteRepo: siteRepo}
}

func (s *SiteService) GetSiteByID(ctx context.Context, siteID uint) (*model.Site, error) {
	site, err := s.siteRepo.GetByID(ctx, siteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSiteNotFound
	}
	return site, err
}

func (s *SiteService) ListSites(ctx context.Context, skip int, limit int) ([]*model.Site, error) {
	return s.siteRepo.List(ctx, skip, limit)
}

func (s *SiteService) CreateSite(ctx context.Context, opts CreateSiteOptions) (*model.Site, error) {
	site := model.Site{
		Name:       opts.Name,
		Address:    opts.Address,
		City:       opts.City,
		Country:    opts.Country,
		PostalCode: opts.PostalCode,
		Phone:      opts.Phone,
		Email:      opts.Email,
		IsActive:   true,
	}
	if err := s.siteRepo.Create(ctx, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *SiteService) UpdateSite(ctx context.Context, siteID uint, patch SitePatch) (*model.Site, error) {
	columns := map[string]interface{}{}
	if patch.Name != nil {
		columns["name"] = *patch.Name
	}
	if patch.Address != nil {
		columns["address"] = *patch.Address
	}
	if patch.City != nil {
		columns["city"] = *patch.City
	}
	if patch.Country != nil {
		columns["country"] = *patch.Country
	}
	if patch.PostalCode != nil {
		columns["postal_code"] = *patch.PostalCode
	}
	if patch.Phone != nil {
		columns["phone"] = *patch.Phone
	}
	if patch.Email != nil {
		columns["email"] = *patch.Email
	}
	if patch.IsActive != nil {
		columns["is_active"] = *patch.IsActive
	}
	if len(columns) > 0 {
		affected, err := s.siteRepo.Updates(ctx, siteID, columns)
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrSiteNotFound
		}
	}
	return s.GetSiteByID(ctx, siteID)
}

func (s *SiteService) DeleteSite(ctx context.Context, siteID uint) error {
	affected, err := s.siteRepo.Delete(ctx, siteID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSiteNotFound
	}
	return nil
}
