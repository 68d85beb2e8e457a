package execplan

import (
	"context"

	"fitflow/internal/domain"
)

// CaseRepository — every write is version-guarded: a concurrent writer turns
// into domain.ErrVersionConflict instead of a silent lost update.
type CaseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Case, error)
	SaveCASWithEffects(ctx context.Context, c *domain.Case, move domain.TaskMove, activities ...*domain.Activity) error
	RecordExpense(ctx context.Context, c *domain.Case, e *domain.Expense) error
}

type CatalogRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error)
}

type EventPublisher interface {
	PublishCaseEvent(event string, caseID int64, payload any)
}
