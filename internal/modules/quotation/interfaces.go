package quotation

import (
	"context"

	"fitflow/internal/domain"
)

// QuotationRepository — the audit state machine's store. Approve and Reject
// are atomic batches; the pending guard lives inside them.
type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id int64) (*domain.Quotation, error)
	ListByCase(ctx context.Context, caseID int64) ([]domain.Quotation, error)
	Approve(ctx context.Context, q *domain.Quotation, auditorID int64, traceID string) error
	Reject(ctx context.Context, q *domain.Quotation, auditorID int64, reason string) error
}

type CaseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
}

type BOQRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BOQ, error)
}

type EventPublisher interface {
	PublishCaseEvent(event string, caseID int64, payload any)
}
