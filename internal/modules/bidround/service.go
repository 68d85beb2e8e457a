package bidround

import (
	"context"
	"time"

	"github.com/google/uuid"

	"fitflow/internal/domain"
)

type Service struct {
	rounds     BidRoundRepository
	quotations QuotationRepository
	vendors    VendorRepository
	users      UserRepository
	events     EventPublisher
}

func NewService(
	rounds BidRoundRepository,
	quotations QuotationRepository,
	vendors VendorRepository,
	users UserRepository,
	events EventPublisher,
) *Service {
	return &Service{
		rounds:     rounds,
		quotations: quotations,
		vendors:    vendors,
		users:      users,
		events:     events,
	}
}

// CreateRound opens a bidding round against an approved quotation. Item
// lines are snapshotted at creation so later quotation edits cannot change
// what vendors bid against.
func (s *Service) CreateRound(ctx context.Context, actorID int64, actorRole domain.UserRole, req CreateRoundRequest) (*domain.BidRound, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProcurement {
		return nil, ErrForbidden
	}
	if len(req.InvitedVendorIDs) == 0 {
		return nil, ErrNoVendors
	}

	q, err := s.quotations.GetByID(ctx, req.QuotationID)
	if err != nil {
		return nil, ErrValidation
	}
	if q.AuditStatus != domain.AuditApproved {
		return nil, ErrNotApproved
	}

	ok, err := s.vendors.ExistByIDs(ctx, req.InvitedVendorIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrValidation
	}

	lines := make(domain.ItemLines, 0, len(q.Items))
	for _, it := range q.Items {
		lines = append(lines, domain.ItemLine{
			CatalogItemID: it.CatalogItemID,
			Description:   it.Description,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
		})
	}

	round := &domain.BidRound{
		CaseID:           q.CaseID,
		QuotationID:      q.ID,
		ItemLines:        lines,
		InvitedVendorIDs: req.InvitedVendorIDs,
		Status:           domain.RoundOpen,
	}
	if err := s.rounds.Create(ctx, round); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("bid_round_opened", round.CaseID, round.ID)
	}
	return round, nil
}

// SubmitBid upserts the vendor's live bid; resubmission replaces the prior
// one. The amount is deliberately unchecked against the item lines — an
// off-reference bid is a negotiation signal, not an error.
func (s *Service) SubmitBid(ctx context.Context, actorID int64, actorRole domain.UserRole, roundID int64, req SubmitBidRequest) (*domain.BidRound, error) {
	switch actorRole {
	case domain.RoleVendor:
		u, err := s.users.GetByID(ctx, actorID)
		if err != nil {
			return nil, ErrForbidden
		}
		if u.VendorID == nil || *u.VendorID != req.VendorID {
			return nil, ErrForbidden
		}
	case domain.RoleAdmin, domain.RoleProcurement:
		// operators may record a bid received out of band
	default:
		return nil, ErrForbidden
	}

	round, err := s.rounds.GetByID(ctx, roundID)
	if err != nil {
		return nil, ErrNotFound
	}
	if round.IsLocked() {
		return nil, domain.ErrRoundLocked
	}
	if round.Status == domain.RoundClosed {
		return nil, domain.ErrRoundClosed
	}
	if !round.InvitedVendorIDs.Contains(req.VendorID) {
		return nil, ErrVendorNotInvited
	}

	bid := &domain.Bid{
		VendorID:     req.VendorID,
		TotalAmount:  req.TotalAmount,
		DeliveryDays: req.DeliveryDays,
		SubmittedAt:  time.Now(),
	}
	if err := s.rounds.UpsertBid(ctx, roundID, bid); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("bid_submitted", round.CaseID, roundID)
	}
	return s.rounds.GetByID(ctx, roundID)
}

// SelectVendor picks the winner among submitted bids. Re-selecting always
// clears a prior admin approval: approving vendor A must never silently lock
// vendor B.
func (s *Service) SelectVendor(ctx context.Context, actorID int64, actorRole domain.UserRole, roundID, vendorID int64) (*domain.BidRound, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProcurement {
		return nil, ErrForbidden
	}

	round, err := s.rounds.GetByID(ctx, roundID)
	if err != nil {
		return nil, ErrNotFound
	}
	if round.IsLocked() {
		return nil, domain.ErrRoundLocked
	}

	hasBid := false
	for _, b := range round.Bids {
		if b.VendorID == vendorID {
			hasBid = true
			break
		}
	}
	if !hasBid {
		return nil, ErrNoBidFromVendor
	}

	if err := s.rounds.SelectVendor(ctx, roundID, vendorID); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("vendor_selected", round.CaseID, roundID)
	}
	return s.rounds.GetByID(ctx, roundID)
}

// SetAdminApproval stamps the two-person gate. Calling it twice is a no-op,
// not an error, so an admin's own double-click never fails visibly.
func (s *Service) SetAdminApproval(ctx context.Context, adminID int64, actorRole domain.UserRole, roundID int64) (*domain.BidRound, error) {
	if actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	round, err := s.rounds.GetByID(ctx, roundID)
	if err != nil {
		return nil, ErrNotFound
	}
	if round.IsLocked() {
		return nil, domain.ErrRoundLocked
	}
	if round.SelectedVendorID == nil {
		return nil, domain.ErrNoVendorSelected
	}

	stamped, err := s.rounds.SetAdminApproval(ctx, roundID, adminID)
	if err != nil {
		return nil, err
	}
	if stamped && s.events != nil {
		s.events.PublishCaseEvent("bid_round_admin_approved", round.CaseID, roundID)
	}
	return s.rounds.GetByID(ctx, roundID)
}

// Lock is terminal: selection and admin approval must both be present, and
// afterwards every mutating call on the round rejects with a terminal-state
// error.
func (s *Service) Lock(ctx context.Context, actorID int64, actorRole domain.UserRole, roundID int64) (*domain.BidRound, error) {
	if actorRole != domain.RoleAdmin {
		return nil, ErrForbidden
	}

	round, err := s.rounds.GetByID(ctx, roundID)
	if err != nil {
		return nil, ErrNotFound
	}
	if round.IsLocked() {
		return nil, domain.ErrRoundLocked
	}
	if round.SelectedVendorID == nil {
		return nil, domain.ErrNoVendorSelected
	}
	if round.AdminApprovedAt == nil {
		return nil, domain.ErrNotAdminApproved
	}

	if err := s.rounds.Lock(ctx, round, actorID, uuid.NewString()); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("vendor_locked", round.CaseID, roundID)
	}
	return s.rounds.GetByID(ctx, roundID)
}

// Close abandons an open round without locking a vendor.
func (s *Service) Close(ctx context.Context, actorRole domain.UserRole, roundID int64) (*domain.BidRound, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleProcurement {
		return nil, ErrForbidden
	}

	round, err := s.rounds.GetByID(ctx, roundID)
	if err != nil {
		return nil, ErrNotFound
	}
	if round.IsLocked() {
		return nil, domain.ErrRoundLocked
	}

	if err := s.rounds.Close(ctx, roundID); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("bid_round_closed", round.CaseID, roundID)
	}
	return s.rounds.GetByID(ctx, roundID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.BidRound, error) {
	round, err := s.rounds.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return round, nil
}

func (s *Service) ListByCase(ctx context.Context, caseID int64) ([]domain.BidRound, error) {
	return s.rounds.ListByCase(ctx, caseID)
}
