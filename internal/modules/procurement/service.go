package procurement

import (
	"context"

	"fitflow/internal/domain"
)

type Service struct {
	plans   ProcurementRepository
	cases   CaseRepository
	vendors VendorRepository
	events  EventPublisher
}

func NewService(
	plans ProcurementRepository,
	cases CaseRepository,
	vendors VendorRepository,
	events EventPublisher,
) *Service {
	return &Service{plans: plans, cases: cases, vendors: vendors, events: events}
}

// ListUnscheduled recomputes the open material lines from scratch on every
// call: plan materials minus every line whose dedup key already has a
// procurement plan. No cursor, no cache.
func (s *Service) ListUnscheduled(ctx context.Context, caseID int64) ([]UnscheduledLine, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrValidation
	}
	if c.Plan == nil {
		return nil, ErrPlanNotActive
	}

	existing, err := s.plans.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	scheduled := make(map[domain.DedupKey]bool, len(existing))
	for _, p := range existing {
		scheduled[p.Key()] = true
	}

	out := make([]UnscheduledLine, 0)
	for _, m := range c.Plan.MaterialLines() {
		key := m.Key()
		if scheduled[key] {
			continue
		}
		out = append(out, UnscheduledLine{
			CatalogItemID: key.CatalogItemID,
			Quantity:      key.Quantity,
			RequiredOn:    key.RequiredOn,
		})
	}
	return out, nil
}

// CreatePlan schedules one material line. The line must belong to the
// activated plan and still be unscheduled; the unique index makes the second
// of two racing creations fail with ErrAlreadyScheduled. No quantity
// reconciliation against the plan total — deliberate soft invariant.
func (s *Service) CreatePlan(ctx context.Context, actorID int64, actorRole domain.UserRole, caseID int64, req CreatePlanRequest) (*domain.ProcurementPlan, error) {
	if actorRole != domain.RoleProcurement && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}
	if req.Quantity <= 0 {
		return nil, ErrValidation
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrValidation
	}
	if c.Plan == nil || !c.Plan.Locked {
		return nil, ErrPlanNotActive
	}

	if _, err := s.vendors.GetByID(ctx, req.VendorID); err != nil {
		return nil, ErrValidation
	}

	key := domain.DedupKey{
		CatalogItemID: req.CatalogItemID,
		Quantity:      req.Quantity,
		RequiredOn:    req.RequiredOn.Format(domain.ProcurementDateLayout),
	}

	inPlan := false
	for _, m := range c.Plan.MaterialLines() {
		if m.Key() == key {
			inPlan = true
			break
		}
	}
	if !inPlan {
		return nil, ErrNotInPlan
	}

	existing, err := s.plans.ListByCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	for _, p := range existing {
		if p.Key() == key {
			return nil, domain.ErrAlreadyScheduled
		}
	}

	p := &domain.ProcurementPlan{
		CaseID:               caseID,
		CatalogItemID:        key.CatalogItemID,
		Quantity:             key.Quantity,
		RequiredOn:           key.RequiredOn,
		VendorID:             req.VendorID,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Status:               domain.ProcurementPlanned,
		CreatedBy:            actorID,
	}
	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("procurement_planned", caseID, p.ID)
	}
	return p, nil
}

// MarkDelivered moves planned → delivered (procurement actor).
func (s *Service) MarkDelivered(ctx context.Context, actorRole domain.UserRole, planID int64) (*domain.ProcurementPlan, error) {
	if actorRole != domain.RoleProcurement && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	p, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, ErrNotFound
	}
	if p.Status != domain.ProcurementPlanned {
		return nil, domain.ErrIllegalTransition
	}

	if err := s.plans.MarkDelivered(ctx, planID); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("procurement_delivered", p.CaseID, planID)
	}
	return s.plans.GetByID(ctx, planID)
}

// MarkInvoiced moves delivered → invoiced (accounts actor).
func (s *Service) MarkInvoiced(ctx context.Context, actorRole domain.UserRole, planID int64) (*domain.ProcurementPlan, error) {
	if actorRole != domain.RoleAccounts && actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	p, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, ErrNotFound
	}
	if p.Status != domain.ProcurementDelivered {
		return nil, domain.ErrIllegalTransition
	}

	if err := s.plans.MarkInvoiced(ctx, planID); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("procurement_invoiced", p.CaseID, planID)
	}
	return s.plans.GetByID(ctx, planID)
}

func (s *Service) ListByCase(ctx context.Context, caseID int64) ([]domain.ProcurementPlan, error) {
	return s.plans.ListByCase(ctx, caseID)
}
