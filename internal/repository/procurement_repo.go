package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"fitflow/internal/domain"
)

type ProcurementRepository struct {
	db *gorm.DB
}

func NewProcurementRepository(db *gorm.DB) *ProcurementRepository {
	return &ProcurementRepository{db: db}
}

// Create appends a plan row. The unique dedup index is the backstop against
// two sessions scheduling the same material line; a violation surfaces as
// ErrAlreadyScheduled.
func (r *ProcurementRepository) Create(ctx context.Context, p *domain.ProcurementPlan) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyScheduled
		}
		return err
	}
	return nil
}

func (r *ProcurementRepository) GetByID(ctx context.Context, id int64) (*domain.ProcurementPlan, error) {
	var p domain.ProcurementPlan
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProcurementRepository) ListByCase(ctx context.Context, caseID int64) ([]domain.ProcurementPlan, error) {
	var plans []domain.ProcurementPlan
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("required_on ASC, id ASC").
		Find(&plans).Error
	return plans, err
}

// MarkDelivered moves planned → delivered; the status guard in the WHERE
// rejects every other starting state.
func (r *ProcurementRepository) MarkDelivered(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&domain.ProcurementPlan{}).
		Where("id = ? AND status = ?", id, domain.ProcurementPlanned).
		Updates(map[string]any{
			"status":       domain.ProcurementDelivered,
			"delivered_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrIllegalTransition
	}
	return nil
}

// MarkInvoiced moves delivered → invoiced (accounts actor).
func (r *ProcurementRepository) MarkInvoiced(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&domain.ProcurementPlan{}).
		Where("id = ? AND status = ?", id, domain.ProcurementDelivered).
		Updates(map[string]any{
			"status":      domain.ProcurementInvoiced,
			"invoiced_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrIllegalTransition
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite driver reports constraint violations as plain errors
	return strings.Contains(strings.ToUpper(err.Error()), "UNIQUE")
}
