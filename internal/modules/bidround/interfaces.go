package bidround

import (
	"context"

	"fitflow/internal/domain"
)

// BidRoundRepository — every mutating method re-checks its precondition
// inside the write, so two sessions racing on the same round cannot land an
// illegal transition.
type BidRoundRepository interface {
	Create(ctx context.Context, round *domain.BidRound) error
	GetByID(ctx context.Context, id int64) (*domain.BidRound, error)
	ListByCase(ctx context.Context, caseID int64) ([]domain.BidRound, error)
	UpsertBid(ctx context.Context, roundID int64, bid *domain.Bid) error
	SelectVendor(ctx context.Context, roundID, vendorID int64) error
	SetAdminApproval(ctx context.Context, roundID, adminID int64) (bool, error)
	Lock(ctx context.Context, round *domain.BidRound, actorID int64, traceID string) error
	Close(ctx context.Context, roundID int64) error
}

type QuotationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Quotation, error)
}

type VendorRepository interface {
	ExistByIDs(ctx context.Context, ids []int64) (bool, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type EventPublisher interface {
	PublishCaseEvent(event string, caseID int64, payload any)
}
