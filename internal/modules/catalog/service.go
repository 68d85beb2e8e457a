package catalog

import (
	"context"

	"fitflow/internal/domain"
)

// The workflow only reads the directories; seeding and maintenance happen
// out of band.

type CatalogRepository interface {
	List(ctx context.Context) ([]domain.CatalogItem, error)
	GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error)
}

type VendorRepository interface {
	List(ctx context.Context) ([]domain.Vendor, error)
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}

type Service struct {
	items   CatalogRepository
	vendors VendorRepository
}

func NewService(items CatalogRepository, vendors VendorRepository) *Service {
	return &Service{items: items, vendors: vendors}
}

func (s *Service) ListItems(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.items.List(ctx)
}

func (s *Service) GetItem(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	return s.items.GetByID(ctx, id)
}

func (s *Service) ListVendors(ctx context.Context) ([]domain.Vendor, error) {
	return s.vendors.List(ctx)
}

func (s *Service) GetVendor(ctx context.Context, id int64) (*domain.Vendor, error) {
	return s.vendors.GetByID(ctx, id)
}
