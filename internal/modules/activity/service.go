package activity

import (
	"context"

	"fitflow/internal/domain"
)

type TaskRepository interface {
	ListOpenByRole(ctx context.Context, role domain.UserRole) ([]domain.Task, error)
	ListByCase(ctx context.Context, caseID int64) ([]domain.Task, error)
}

type ActivityRepository interface {
	ListByCase(ctx context.Context, caseID int64) ([]domain.Activity, error)
}

type Service struct {
	tasks      TaskRepository
	activities ActivityRepository
}

func NewService(tasks TaskRepository, activities ActivityRepository) *Service {
	return &Service{tasks: tasks, activities: activities}
}

// Inbox returns the open work queue for the caller's role.
func (s *Service) Inbox(ctx context.Context, role domain.UserRole) ([]domain.Task, error) {
	return s.tasks.ListOpenByRole(ctx, role)
}

func (s *Service) CaseTasks(ctx context.Context, caseID int64) ([]domain.Task, error) {
	return s.tasks.ListByCase(ctx, caseID)
}

func (s *Service) CaseFeed(ctx context.Context, caseID int64) ([]domain.Activity, error) {
	return s.activities.ListByCase(ctx, caseID)
}
