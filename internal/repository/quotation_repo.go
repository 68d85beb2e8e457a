package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fitflow/internal/domain"
)

type QuotationRepository struct {
	db *gorm.DB
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// Create persists the quotation with its items and opens the audit task for
// the auditor, as one batch.
func (r *QuotationRepository) Create(ctx context.Context, q *domain.Quotation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		return tx.Create(&domain.Task{
			CaseID:       q.CaseID,
			Type:         domain.TaskQuotationAudit,
			AssigneeRole: domain.RoleAuditor,
			Status:       domain.TaskOpen,
			RefID:        q.ID,
		}).Error
	})
}

func (r *QuotationRepository) GetByID(ctx context.Context, id int64) (*domain.Quotation, error) {
	var q domain.Quotation
	if err := r.db.WithContext(ctx).Preload("Items").First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuotationRepository) ListByCase(ctx context.Context, caseID int64) ([]domain.Quotation, error) {
	var quotes []domain.Quotation
	err := r.db.WithContext(ctx).Preload("Items").
		Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

// Approve runs the full approval fan-out as one atomic batch:
// status flip + auditor stamp, client-visible document, audit task completed,
// originating BOQ locked, activity line, procurement-audit task opened, case
// advanced to QUOTATION if it still lags. The pending guard is in the WHERE,
// so a doubled call fails with ErrAlreadyAudited and never re-runs the
// fan-out.
func (r *QuotationRepository) Approve(ctx context.Context, q *domain.Quotation, auditorID int64, traceID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Quotation{}).
			Where("id = ? AND audit_status = ?", q.ID, domain.AuditPending).
			Updates(map[string]any{
				"audit_status": domain.AuditApproved,
				"audited_by":   auditorID,
				"audited_at":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrAlreadyAudited
		}

		if err := tx.Create(&domain.CaseDocument{
			CaseID:          q.CaseID,
			Kind:            domain.DocQuotation,
			Title:           fmt.Sprintf("Quotation #%d", q.ID),
			RefID:           q.ID,
			VisibleToClient: true,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Task{}).
			Where("case_id = ? AND type = ? AND ref_id = ? AND status = ?",
				q.CaseID, domain.TaskQuotationAudit, q.ID, domain.TaskOpen).
			Updates(map[string]any{
				"status":       domain.TaskCompleted,
				"completed_by": auditorID,
				"completed_at": now,
			}).Error; err != nil {
			return err
		}

		if q.BOQID != nil {
			if err := tx.Model(&domain.BOQ{}).
				Where("id = ?", *q.BOQID).
				Update("locked", true).Error; err != nil {
				return err
			}
		}

		if err := tx.Create(&domain.Activity{
			CaseID:  q.CaseID,
			ActorID: auditorID,
			Kind:    "quotation_approved",
			Message: fmt.Sprintf("Quotation #%d approved, grand total %.2f", q.ID, q.GrandTotal),
			TraceID: traceID,
		}).Error; err != nil {
			return err
		}

		if err := tx.Create(&domain.Task{
			CaseID:       q.CaseID,
			Type:         domain.TaskProcurementAudit,
			AssigneeRole: domain.RoleProcurement,
			Status:       domain.TaskOpen,
			RefID:        q.ID,
		}).Error; err != nil {
			return err
		}

		// pre-sale cascade: an approved quotation means the case is at
		// least in the QUOTATION stage
		return tx.Model(&domain.Case{}).
			Where("id = ? AND status IN ?", q.CaseID,
				[]domain.CaseStatus{domain.CaseLead, domain.CaseSurvey, domain.CaseDrawing, domain.CaseBOQ}).
			Updates(map[string]any{
				"status":  domain.CaseQuotation,
				"version": gorm.Expr("version + 1"),
			}).Error
	})
}

// Reject flips pending → rejected with the mandatory reason. The audit task
// stays open: the preparer submits a revision as a new quotation.
func (r *QuotationRepository) Reject(ctx context.Context, q *domain.Quotation, auditorID int64, reason string) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&domain.Quotation{}).
		Where("id = ? AND audit_status = ?", q.ID, domain.AuditPending).
		Updates(map[string]any{
			"audit_status":  domain.AuditRejected,
			"reject_reason": reason,
			"audited_by":    auditorID,
			"audited_at":    now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrAlreadyAudited
	}
	return nil
}
