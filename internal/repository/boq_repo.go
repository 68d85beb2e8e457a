package repository

import (
	"context"

	"gorm.io/gorm"

	"fitflow/internal/domain"
)

type BOQRepository struct {
	db *gorm.DB
}

func NewBOQRepository(db *gorm.DB) *BOQRepository {
	return &BOQRepository{db: db}
}

func (r *BOQRepository) Create(ctx context.Context, b *domain.BOQ) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BOQRepository) GetByID(ctx context.Context, id int64) (*domain.BOQ, error) {
	var b domain.BOQ
	if err := r.db.WithContext(ctx).Preload("Items").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BOQRepository) ListByCase(ctx context.Context, caseID int64) ([]domain.BOQ, error) {
	var boqs []domain.BOQ
	err := r.db.WithContext(ctx).Preload("Items").
		Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&boqs).Error
	return boqs, err
}

// ReplaceItems swaps the item set and totals in one batch. The locked guard
// sits in the WHERE so a concurrent approval cannot interleave an edit.
func (r *BOQRepository) ReplaceItems(ctx context.Context, b *domain.BOQ) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.BOQ{}).
			Where("id = ? AND locked = ?", b.ID, false).
			Update("total", b.Total)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrBOQLocked
		}

		if err := tx.Where("boq_id = ?", b.ID).Delete(&domain.BOQItem{}).Error; err != nil {
			return err
		}
		for i := range b.Items {
			b.Items[i].ID = 0
			b.Items[i].BOQID = b.ID
		}
		if len(b.Items) == 0 {
			return nil
		}
		return tx.Create(&b.Items).Error
	})
}
