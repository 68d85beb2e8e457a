package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitflow/internal/domain"
)

type BidRoundRepository struct {
	db *gorm.DB
}

func NewBidRoundRepository(db *gorm.DB) *BidRoundRepository {
	return &BidRoundRepository{db: db}
}

func (r *BidRoundRepository) Create(ctx context.Context, round *domain.BidRound) error {
	return r.db.WithContext(ctx).Create(round).Error
}

func (r *BidRoundRepository) GetByID(ctx context.Context, id int64) (*domain.BidRound, error) {
	var round domain.BidRound
	if err := r.db.WithContext(ctx).Preload("Bids").First(&round, id).Error; err != nil {
		return nil, err
	}
	return &round, nil
}

func (r *BidRoundRepository) ListByCase(ctx context.Context, caseID int64) ([]domain.BidRound, error) {
	var rounds []domain.BidRound
	err := r.db.WithContext(ctx).Preload("Bids").
		Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&rounds).Error
	return rounds, err
}

// UpsertBid replaces the vendor's live bid (last write wins per vendor). The
// lock guard re-checks inside the write so a bid can never land after
// lockVendor committed.
func (r *BidRoundRepository) UpsertBid(ctx context.Context, roundID int64, bid *domain.Bid) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&domain.BidRound{}).
			Where("id = ? AND locked_at IS NULL AND status = ?", roundID, domain.RoundOpen).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return domain.ErrRoundLocked
		}

		bid.RoundID = roundID
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "round_id"}, {Name: "vendor_id"}},
			UpdateAll: true,
		}).Create(bid).Error
	})
}

// SelectVendor sets the selection and clears any prior admin approval in the
// same write, so a stale approval can never ride into lockVendor.
func (r *BidRoundRepository) SelectVendor(ctx context.Context, roundID, vendorID int64) error {
	res := r.db.WithContext(ctx).Model(&domain.BidRound{}).
		Where("id = ? AND locked_at IS NULL", roundID).
		Updates(map[string]any{
			"selected_vendor_id": vendorID,
			"admin_approved_at":  nil,
			"admin_approved_by":  nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoundLocked
	}
	return nil
}

// SetAdminApproval stamps once; an already-stamped round reports rows=0 and
// the caller treats that as the idempotent no-op.
func (r *BidRoundRepository) SetAdminApproval(ctx context.Context, roundID, adminID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.BidRound{}).
		Where("id = ? AND locked_at IS NULL AND selected_vendor_id IS NOT NULL AND admin_approved_at IS NULL", roundID).
		Updates(map[string]any{
			"admin_approved_at": time.Now(),
			"admin_approved_by": adminID,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Lock freezes the round and unlocks execution planning on the case, as one
// batch. All preconditions are re-checked in the WHERE.
func (r *BidRoundRepository) Lock(ctx context.Context, round *domain.BidRound, actorID int64, traceID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.BidRound{}).
			Where("id = ? AND locked_at IS NULL AND selected_vendor_id IS NOT NULL AND admin_approved_at IS NOT NULL", round.ID).
			Updates(map[string]any{
				"locked_at": now,
				"status":    domain.RoundClosed,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRoundLocked
		}

		if err := tx.Create(&domain.Activity{
			CaseID:  round.CaseID,
			ActorID: actorID,
			Kind:    "vendor_locked",
			Message: fmt.Sprintf("Vendor %d locked for bid round #%d", *round.SelectedVendorID, round.ID),
			TraceID: traceID,
		}).Error; err != nil {
			return err
		}

		// a locked vendor means the case is ready for execution planning
		return tx.Model(&domain.Case{}).
			Where("id = ? AND status IN ?", round.CaseID,
				[]domain.CaseStatus{domain.CaseLead, domain.CaseSurvey, domain.CaseDrawing, domain.CaseBOQ, domain.CaseQuotation}).
			Updates(map[string]any{
				"status":     domain.CaseWaitingForPlanning,
				"is_project": true,
				"version":    gorm.Expr("version + 1"),
			}).Error
	})
}

// Close abandons an unlocked round.
func (r *BidRoundRepository) Close(ctx context.Context, roundID int64) error {
	res := r.db.WithContext(ctx).Model(&domain.BidRound{}).
		Where("id = ? AND locked_at IS NULL AND status = ?", roundID, domain.RoundOpen).
		Update("status", domain.RoundClosed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrRoundClosed
	}
	return nil
}
