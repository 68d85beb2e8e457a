package execplan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fitflow/internal/domain"
)

// Mock repositories
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) GetByID(ctx context.Context, id int64) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseRepository) SaveCASWithEffects(ctx context.Context, c *domain.Case, move domain.TaskMove, activities ...*domain.Activity) error {
	args := m.Called(ctx, c, move, activities)
	return args.Error(0)
}

func (m *MockCaseRepository) RecordExpense(ctx context.Context, c *domain.Case, e *domain.Expense) error {
	args := m.Called(ctx, c, e)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetByID(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func newTestService() (*Service, *MockCaseRepository, *MockCatalogRepository) {
	cases := new(MockCaseRepository)
	catalog := new(MockCatalogRepository)
	return NewService(cases, catalog, nil), cases, catalog
}

func planningCase() *domain.Case {
	return &domain.Case{
		ID:      1,
		Status:  domain.CaseWaitingForPlanning,
		Version: 3,
	}
}

func submittedPlan(total float64) *domain.ExecutionPlan {
	headID := int64(7)
	now := time.Now()
	return &domain.ExecutionPlan{
		Days: []domain.PlanDay{{
			DayNumber: 1,
			Title:     "Demolition",
			LaborCost: total,
		}},
		TotalCost:  total,
		PreparedBy: headID,
		PreparedAt: now,
		Approvals: domain.PlanApprovals{
			ProjectHead: domain.PlanApproval{Approved: true, ApprovedBy: &headID, ApprovedAt: &now},
		},
	}
}

func TestService_SubmitPlan_CostsFromCatalog(t *testing.T) {
	svc, cases, catalog := newTestService()

	cases.On("GetByID", mock.Anything, int64(1)).Return(planningCase(), nil)
	catalog.On("GetByID", mock.Anything, int64(7)).Return(&domain.CatalogItem{ID: 7, Rate: 650}, nil)
	var move domain.TaskMove
	cases.On("SaveCASWithEffects", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { move = args.Get(2).(domain.TaskMove) }).
		Return(nil)

	req := SubmitPlanRequest{
		Days: []DayRequest{{
			Title:     "Partitions",
			LaborCost: 5000,
			Materials: []MaterialRequest{{CatalogItemID: 7, Quantity: 40, RequiredOn: time.Now()}},
		}},
	}

	c, err := svc.SubmitPlan(context.Background(), 7, domain.RoleProjectHead, 1, req)

	assert.NoError(t, err)
	// 5000 labor + 40 * 650 catalog rate
	assert.Equal(t, 31000.0, c.Plan.TotalCost)
	assert.Equal(t, domain.CasePlanningInProgress, c.Status)
	assert.True(t, c.Plan.Approvals.ProjectHead.Approved)

	// submission hands the plan off to both remaining approvers
	assert.Len(t, move.Open, 2)
	roles := make([]domain.UserRole, 0, 2)
	for _, task := range move.Open {
		assert.Equal(t, domain.TaskPlanApproval, task.Type)
		assert.Equal(t, domain.TaskOpen, task.Status)
		assert.Equal(t, int64(1), task.CaseID)
		roles = append(roles, task.AssigneeRole)
	}
	assert.ElementsMatch(t, []domain.UserRole{domain.RoleAdmin, domain.RoleClient}, roles)
}

func TestService_SubmitPlan_OnlyProjectHead(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SubmitPlan(context.Background(), 9, domain.RoleAdmin, 1, SubmitPlanRequest{
		Days: []DayRequest{{LaborCost: 100}},
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_SubmitPlan_ResubmitNeedsReject(t *testing.T) {
	svc, cases, _ := newTestService()

	c := planningCase()
	c.Plan = submittedPlan(10000)
	cases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)

	_, err := svc.SubmitPlan(context.Background(), 7, domain.RoleProjectHead, 1, SubmitPlanRequest{
		Days: []DayRequest{{LaborCost: 100}},
	})
	assert.ErrorIs(t, err, ErrResubmit)
}

func TestService_Approve_AdminAloneDoesNotActivate(t *testing.T) {
	svc, cases, _ := newTestService()

	c := planningCase()
	c.Status = domain.CasePlanningInProgress
	c.Plan = submittedPlan(10000)
	cases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)
	var move domain.TaskMove
	cases.On("SaveCASWithEffects", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { move = args.Get(2).(domain.TaskMove) }).
		Return(nil)

	got, err := svc.Approve(context.Background(), 9, domain.RoleAdmin, 1)

	assert.NoError(t, err)
	assert.True(t, got.Plan.Approvals.Admin.Approved)
	assert.False(t, got.Plan.Locked)
	assert.Nil(t, got.CostCenter)
	assert.Equal(t, domain.CasePlanningInProgress, got.Status)

	// only the admin's own approval task completes
	assert.Equal(t, domain.TaskPlanApproval, move.CompleteType)
	assert.Equal(t, domain.RoleAdmin, move.CompleteRole)
	assert.Empty(t, move.Open)
}

func TestService_Approve_AdminPlusClientActivates(t *testing.T) {
	svc, cases, _ := newTestService()

	c := planningCase()
	c.Status = domain.CasePlanningInProgress
	c.Plan = submittedPlan(10000)
	adminID := int64(9)
	now := time.Now()
	c.Plan.Approvals.Admin = domain.PlanApproval{Approved: true, ApprovedBy: &adminID, ApprovedAt: &now}
	cases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)
	var move domain.TaskMove
	cases.On("SaveCASWithEffects", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { move = args.Get(2).(domain.TaskMove) }).
		Return(nil)

	got, err := svc.Approve(context.Background(), 11, domain.RoleClient, 1)

	assert.NoError(t, err)
	assert.True(t, got.Plan.Locked)
	assert.True(t, got.IsProject)
	assert.Equal(t, domain.CaseExecutionActive, got.Status)
	assert.Equal(t, 10000.0, got.CostCenter.TotalBudget)
	assert.Equal(t, 0.0, got.CostCenter.SpentAmount)
	assert.Equal(t, 10000.0, got.CostCenter.RemainingAmount)

	// activation sweeps every approval task still open
	assert.Equal(t, domain.TaskPlanApproval, move.CompleteType)
	assert.Empty(t, move.CompleteRole)
}

// A retried approval after activation must not re-zero the cost center,
// even when spending already happened in between.
func TestService_Approve_RetryAfterSpendKeepsSpent(t *testing.T) {
	svc, cases, _ := newTestService()

	c := planningCase()
	c.Status = domain.CasePlanningInProgress
	c.Plan = submittedPlan(10000)
	adminID := int64(9)
	now := time.Now()
	c.Plan.Approvals.Admin = domain.PlanApproval{Approved: true, ApprovedBy: &adminID, ApprovedAt: &now}
	cases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)
	cases.On("SaveCASWithEffects", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	cases.On("RecordExpense", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Approve(context.Background(), 11, domain.RoleClient, 1)
	assert.NoError(t, err)

	_, err = svc.RecordExpense(context.Background(), 12, domain.RoleAccounts, 1, ExpenseRequest{Amount: 2500, Note: "cement advance"})
	assert.NoError(t, err)
	assert.Equal(t, 2500.0, c.CostCenter.SpentAmount)

	// second activation attempt lands after the spend
	got, err := svc.Approve(context.Background(), 11, domain.RoleClient, 1)

	assert.NoError(t, err)
	assert.Equal(t, 2500.0, got.CostCenter.SpentAmount)
	assert.Equal(t, 7500.0, got.CostCenter.RemainingAmount)
	// the no-op path writes nothing
	cases.AssertNumberOfCalls(t, "SaveCASWithEffects", 1)
}

func TestService_Reject_NullsPlan(t *testing.T) {
	svc, cases, _ := newTestService()

	c := planningCase()
	c.Status = domain.CasePlanningInProgress
	c.Plan = submittedPlan(10000)
	cases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)
	var move domain.TaskMove
	cases.On("SaveCASWithEffects", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { move = args.Get(2).(domain.TaskMove) }).
		Return(nil)

	got, err := svc.Reject(context.Background(), 9, domain.RoleAdmin, 1)

	assert.NoError(t, err)
	assert.Nil(t, got.Plan)
	assert.Equal(t, domain.CaseWaitingForPlanning, got.Status)

	// the dead plan's approval tasks go with it
	assert.Equal(t, domain.TaskPlanApproval, move.CompleteType)
	assert.Empty(t, move.CompleteRole)
}

func TestService_Reject_LockedPlanIsImmutable(t *testing.T) {
	svc, cases, _ := newTestService()

	c := planningCase()
	c.Plan = submittedPlan(10000)
	c.Plan.Locked = true
	cases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)

	_, err := svc.Reject(context.Background(), 9, domain.RoleAdmin, 1)
	assert.ErrorIs(t, err, domain.ErrPlanLocked)
}

func TestService_RecordExpense_NeedsActivePlan(t *testing.T) {
	svc, cases, _ := newTestService()

	c := planningCase()
	c.Plan = submittedPlan(10000)
	cases.On("GetByID", mock.Anything, int64(1)).Return(c, nil)

	_, err := svc.RecordExpense(context.Background(), 12, domain.RoleAccounts, 1, ExpenseRequest{Amount: 100})
	assert.ErrorIs(t, err, ErrNoCostCenter)
}
