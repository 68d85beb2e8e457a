package casefile

import (
	"context"

	"fitflow/internal/domain"
	"fitflow/internal/repository"
)

type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
	List(ctx context.Context, f repository.CaseFilters, limit, offset int) ([]domain.Case, int64, error)
	SaveCAS(ctx context.Context, c *domain.Case) error
}

type BOQRepository interface {
	Create(ctx context.Context, b *domain.BOQ) error
	GetByID(ctx context.Context, id int64) (*domain.BOQ, error)
	ListByCase(ctx context.Context, caseID int64) ([]domain.BOQ, error)
	ReplaceItems(ctx context.Context, b *domain.BOQ) error
}

type DocumentRepository interface {
	ListByCase(ctx context.Context, caseID int64, clientOnly bool) ([]domain.CaseDocument, error)
}

type EventPublisher interface {
	PublishCaseEvent(event string, caseID int64, payload any)
}
