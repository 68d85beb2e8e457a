package procurement

import (
	"context"

	"fitflow/internal/domain"
)

type ProcurementRepository interface {
	Create(ctx context.Context, p *domain.ProcurementPlan) error
	GetByID(ctx context.Context, id int64) (*domain.ProcurementPlan, error)
	ListByCase(ctx context.Context, caseID int64) ([]domain.ProcurementPlan, error)
	MarkDelivered(ctx context.Context, id int64) error
	MarkInvoiced(ctx context.Context, id int64) error
}

type CaseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
}

type VendorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}

type EventPublisher interface {
	PublishCaseEvent(event string, caseID int64, payload any)
}
