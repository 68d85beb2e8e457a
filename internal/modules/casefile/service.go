package casefile

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"fitflow/internal/domain"
	"fitflow/internal/repository"
)

type Service struct {
	cases  CaseRepository
	boqs   BOQRepository
	docs   DocumentRepository
	events EventPublisher
}

func NewService(cases CaseRepository, boqs BOQRepository, docs DocumentRepository, events EventPublisher) *Service {
	return &Service{cases: cases, boqs: boqs, docs: docs, events: events}
}

// CreateLead opens a new case at the head of the pre-sale pipeline.
func (s *Service) CreateLead(ctx context.Context, actorRole domain.UserRole, req CreateCaseRequest) (*domain.Case, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProjectHead {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.ClientName) == "" {
		return nil, ErrValidation
	}
	if req.Budget < 0 {
		return nil, ErrValidation
	}

	c := &domain.Case{
		Number:     "CASE-" + strings.ToUpper(uuid.NewString()[:8]),
		Title:      strings.TrimSpace(req.Title),
		ClientName: strings.TrimSpace(req.ClientName),
		ClientID:   req.ClientID,
		Status:     domain.CaseLead,
		Budget:     req.Budget,
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("case_created", c.ID, c.Number)
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) List(ctx context.Context, f repository.CaseFilters, page, limit int) ([]domain.Case, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.cases.List(ctx, f, limit, (page-1)*limit)
}

// AdvanceStatus walks the case one step along the ordered pre-sale pipeline.
// Planning and execution statuses are only reached through the workflow
// transitions, never through this call.
func (s *Service) AdvanceStatus(ctx context.Context, actorID int64, actorRole domain.UserRole, caseID int64) (*domain.Case, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProjectHead {
		return nil, ErrForbidden
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrNotFound
	}

	next := domain.NextPresaleStatus(c.Status)
	if next == "" {
		return nil, ErrNotPresale
	}

	c.Status = next
	if err := s.cases.SaveCAS(ctx, c); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("case_status_changed", c.ID, string(next))
	}
	return c, nil
}

// MarkLost closes a pre-sale case that did not convert.
func (s *Service) MarkLost(ctx context.Context, actorID int64, actorRole domain.UserRole, caseID int64) (*domain.Case, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProjectHead {
		return nil, ErrForbidden
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrNotFound
	}
	if c.IsProject {
		return nil, ErrNotPresale
	}

	c.Status = domain.CaseLost
	if err := s.cases.SaveCAS(ctx, c); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("case_lost", c.ID, nil)
	}
	return c, nil
}

// CreateBOQ drafts a bill of quantities for the case.
func (s *Service) CreateBOQ(ctx context.Context, actorRole domain.UserRole, caseID int64, req BOQRequest) (*domain.BOQ, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProjectHead {
		return nil, ErrForbidden
	}
	if _, err := s.cases.GetByID(ctx, caseID); err != nil {
		return nil, ErrNotFound
	}

	b := &domain.BOQ{CaseID: caseID}
	items, err := boqItems(req)
	if err != nil {
		return nil, err
	}
	b.Items = items
	b.Recompute()

	if err := s.boqs.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBOQ replaces the item set while the BOQ is unlocked. A locked BOQ
// (quotation approved against it) rejects every edit.
func (s *Service) UpdateBOQ(ctx context.Context, actorRole domain.UserRole, boqID int64, req BOQRequest) (*domain.BOQ, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProjectHead {
		return nil, ErrForbidden
	}

	b, err := s.boqs.GetByID(ctx, boqID)
	if err != nil {
		return nil, ErrNotFound
	}
	if b.Locked {
		return nil, domain.ErrBOQLocked
	}

	items, err := boqItems(req)
	if err != nil {
		return nil, err
	}
	b.Items = items
	b.Recompute()

	if err := s.boqs.ReplaceItems(ctx, b); err != nil {
		return nil, err
	}
	return s.boqs.GetByID(ctx, boqID)
}

func (s *Service) ListBOQs(ctx context.Context, caseID int64) ([]domain.BOQ, error) {
	return s.boqs.ListByCase(ctx, caseID)
}

// ListDocuments returns the case's attached documents. Clients only ever
// see what a workflow transition explicitly flagged visible.
func (s *Service) ListDocuments(ctx context.Context, actorRole domain.UserRole, caseID int64) ([]domain.CaseDocument, error) {
	clientOnly := actorRole == domain.RoleClient
	return s.docs.ListByCase(ctx, caseID, clientOnly)
}

func boqItems(req BOQRequest) ([]domain.BOQItem, error) {
	if len(req.Items) == 0 {
		return nil, ErrValidation
	}
	items := make([]domain.BOQItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 || it.UnitRate <= 0 {
			return nil, ErrValidation
		}
		items = append(items, domain.BOQItem{
			CatalogItemID: it.CatalogItemID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitRate:      it.UnitRate,
		})
	}
	return items, nil
}
