package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"fitflow/internal/domain"
)

type CaseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) *CaseRepository {
	return &CaseRepository{db: db}
}

func (r *CaseRepository) Create(ctx context.Context, c *domain.Case) error {
	c.Version = 1
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CaseRepository) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	var c domain.Case
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

type CaseFilters struct {
	Status    string
	IsProject *bool
}

func (r *CaseRepository) List(ctx context.Context, f CaseFilters, limit, offset int) ([]domain.Case, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Case{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.IsProject != nil {
		q = q.Where("is_project = ?", *f.IsProject)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cases []domain.Case
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&cases).Error; err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// SaveCAS writes the case's mutable fields guarded by the version the caller
// read. A concurrent writer makes the guard miss and the caller gets
// ErrVersionConflict instead of silently overwriting.
func (r *CaseRepository) SaveCAS(ctx context.Context, c *domain.Case) error {
	return r.saveCAS(r.db.WithContext(ctx), c)
}

func (r *CaseRepository) saveCAS(tx *gorm.DB, c *domain.Case) error {
	res := tx.Model(&domain.Case{}).
		Where("id = ? AND version = ?", c.ID, c.Version).
		Updates(map[string]any{
			"title":          c.Title,
			"client_name":    c.ClientName,
			"status":         c.Status,
			"is_project":     c.IsProject,
			"budget":         c.Budget,
			"execution_plan": c.Plan,
			"cost_center":    c.CostCenter,
			"version":        c.Version + 1,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrVersionConflict
	}
	c.Version++
	return nil
}

// SaveCASWithEffects is SaveCAS plus the side rows of a terminal transition,
// committed as one batch: the task queue moves and the activity lines land
// with the case write or not at all. This is what the execution-plan
// activation rides on: status flip, plan lock, cost-center init, task
// handoff and the log line are never observed half-applied.
func (r *CaseRepository) SaveCASWithEffects(ctx context.Context, c *domain.Case, move domain.TaskMove, activities ...*domain.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveCAS(tx, c); err != nil {
			return err
		}

		if move.CompleteType != "" {
			q := tx.Model(&domain.Task{}).
				Where("case_id = ? AND type = ? AND status = ?", c.ID, move.CompleteType, domain.TaskOpen)
			if move.CompleteRole != "" {
				q = q.Where("assignee_role = ?", move.CompleteRole)
			}
			if err := q.Updates(map[string]any{
				"status":       domain.TaskCompleted,
				"completed_by": move.CompletedBy,
				"completed_at": time.Now(),
			}).Error; err != nil {
				return err
			}
		}
		for _, task := range move.Open {
			if err := tx.Create(task).Error; err != nil {
				return err
			}
		}

		for _, a := range activities {
			if err := tx.Create(a).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// RecordExpense appends a ledger row and moves the embedded cost-center
// totals in the same version-guarded batch.
func (r *CaseRepository) RecordExpense(ctx context.Context, c *domain.Case, e *domain.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.saveCAS(tx, c); err != nil {
			return err
		}
		return tx.Create(e).Error
	})
}
