package repository

import (
	"context"

	"gorm.io/gorm"

	"fitflow/internal/domain"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.CatalogItem, error) {
	var items []domain.CatalogItem
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *CatalogRepository) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	var item domain.CatalogItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) List(ctx context.Context) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	err := r.db.WithContext(ctx).Order("company_name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *VendorRepository) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	var v domain.Vendor
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) ExistByIDs(ctx context.Context, ids []int64) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&domain.Vendor{}).Where("id IN ?", ids).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == int64(len(ids)), nil
}
