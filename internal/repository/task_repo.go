package repository

import (
	"context"

	"gorm.io/gorm"

	"fitflow/internal/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) ListOpenByRole(ctx context.Context, role domain.UserRole) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("assignee_role = ? AND status = ?", role, domain.TaskOpen).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByCase(ctx context.Context, caseID int64) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Append(ctx context.Context, a *domain.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) ListByCase(ctx context.Context, caseID int64) ([]domain.Activity, error) {
	var acts []domain.Activity
	err := r.db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at DESC").
		Find(&acts).Error
	return acts, err
}

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) ListByCase(ctx context.Context, caseID int64, clientOnly bool) ([]domain.CaseDocument, error) {
	q := r.db.WithContext(ctx).Where("case_id = ?", caseID)
	if clientOnly {
		q = q.Where("visible_to_client = ?", true)
	}
	var docs []domain.CaseDocument
	err := q.Order("created_at DESC").Find(&docs).Error
	return docs, err
}
