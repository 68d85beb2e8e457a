package quotation

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fitflow/internal/domain"
)

type Service struct {
	quotations QuotationRepository
	cases      CaseRepository
	boqs       BOQRepository
	events     EventPublisher
}

func NewService(
	quotations QuotationRepository,
	cases CaseRepository,
	boqs BOQRepository,
	events EventPublisher,
) *Service {
	return &Service{
		quotations: quotations,
		cases:      cases,
		boqs:       boqs,
		events:     events,
	}
}

// Create submits a quotation for audit. Preparer-only; at least one item and
// every line with quantity > 0 and unit price > 0. Totals are recomputed
// server-side, never taken from the caller.
func (s *Service) Create(ctx context.Context, actorID int64, actorRole domain.UserRole, req CreateRequest) (*domain.Quotation, error) {
	if actorRole != domain.RoleProjectHead && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if len(req.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 || it.UnitPrice <= 0 {
			return nil, ErrBadRate
		}
		if it.DiscountPercent < 0 || it.DiscountPercent > 100 {
			return nil, ErrValidation
		}
	}

	if _, err := s.cases.GetByID(ctx, req.CaseID); err != nil {
		return nil, ErrValidation
	}
	if req.BOQID != nil {
		boq, err := s.boqs.GetByID(ctx, *req.BOQID)
		if err != nil || boq.CaseID != req.CaseID {
			return nil, ErrValidation
		}
	}

	taxPercent := domain.DefaultTaxPercent
	if req.TaxPercent != nil {
		if *req.TaxPercent < 0 {
			return nil, ErrValidation
		}
		taxPercent = *req.TaxPercent
	}

	q := &domain.Quotation{
		CaseID:      req.CaseID,
		BOQID:       req.BOQID,
		TaxPercent:  taxPercent,
		AuditStatus: domain.AuditPending,
		PreparedBy:  actorID,
	}
	for i, it := range req.Items {
		q.Items = append(q.Items, domain.QuotationItem{
			CatalogItemID:   it.CatalogItemID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			SortOrder:       i,
		})
	}
	q.Recompute()

	if err := s.quotations.Create(ctx, q); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("quotation_submitted", q.CaseID, q.ID)
	}
	return q, nil
}

// Approve runs the terminal approval transition. The fan-out (document,
// task completion, BOQ lock, next task) rides in the repository batch; a
// second attempt fails with a state error and never repeats it.
func (s *Service) Approve(ctx context.Context, quotationID, auditorID int64, actorRole domain.UserRole) (*domain.Quotation, error) {
	if actorRole != domain.RoleAuditor && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	q, err := s.quotations.GetByID(ctx, quotationID)
	if err != nil {
		return nil, ErrNotFound
	}
	if q.AuditStatus != domain.AuditPending {
		return nil, domain.ErrAlreadyAudited
	}

	if err := s.quotations.Approve(ctx, q, auditorID, uuid.NewString()); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("quotation_approved", q.CaseID, q.ID)
	}
	return s.quotations.GetByID(ctx, quotationID)
}

// Reject requires a non-blank reason. The rejected quotation stays visible
// as history; a revision is a new document.
func (s *Service) Reject(ctx context.Context, quotationID, auditorID int64, actorRole domain.UserRole, reason string) (*domain.Quotation, error) {
	if actorRole != domain.RoleAuditor && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(reason) == "" {
		return nil, ErrNoReason
	}

	q, err := s.quotations.GetByID(ctx, quotationID)
	if err != nil {
		return nil, ErrNotFound
	}
	if q.AuditStatus != domain.AuditPending {
		return nil, domain.ErrAlreadyAudited
	}

	if err := s.quotations.Reject(ctx, q, auditorID, strings.TrimSpace(reason)); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("quotation_rejected", q.CaseID, q.ID)
	}
	return s.quotations.GetByID(ctx, quotationID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Quotation, error) {
	q, err := s.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return q, nil
}

func (s *Service) ListByCase(ctx context.Context, caseID int64) ([]domain.Quotation, error) {
	return s.quotations.ListByCase(ctx, caseID)
}
