package execplan

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"fitflow/internal/domain"
)

type Service struct {
	cases   CaseRepository
	catalog CatalogRepository
	events  EventPublisher
}

func NewService(cases CaseRepository, catalog CatalogRepository, events EventPublisher) *Service {
	return &Service{cases: cases, catalog: catalog, events: events}
}

// SubmitPlan writes the full plan and moves the case into
// PLANNING_IN_PROGRESS. The preparer's own approval is stamped on submit;
// admin and client approve afterwards. Resubmission requires an explicit
// reject first — no partial fixes of a submitted plan.
func (s *Service) SubmitPlan(ctx context.Context, actorID int64, actorRole domain.UserRole, caseID int64, req SubmitPlanRequest) (*domain.Case, error) {
	if actorRole != domain.RoleProjectHead {
		return nil, ErrForbidden
	}
	if len(req.Days) == 0 {
		return nil, ErrNoDays
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrCaseNotFound
	}
	if c.Plan != nil {
		if c.Plan.Locked {
			return nil, domain.ErrPlanLocked
		}
		if c.Plan.Approvals.ProjectHead.Approved {
			return nil, ErrResubmit
		}
	}

	now := time.Now()
	plan := &domain.ExecutionPlan{
		PreparedBy: actorID,
		PreparedAt: now,
	}

	var total float64
	for i, d := range req.Days {
		day := domain.PlanDay{
			DayNumber: i + 1,
			Title:     d.Title,
			LaborCost: d.LaborCost,
		}
		if d.LaborCost < 0 {
			return nil, ErrValidation
		}
		total += d.LaborCost

		for _, m := range d.Materials {
			if m.Quantity <= 0 {
				return nil, ErrValidation
			}
			item, err := s.catalog.GetByID(ctx, m.CatalogItemID)
			if err != nil {
				return nil, ErrValidation
			}
			total += m.Quantity * item.Rate
			day.Materials = append(day.Materials, domain.PlanMaterial{
				CatalogItemID: m.CatalogItemID,
				Quantity:      m.Quantity,
				RequiredOn:    m.RequiredOn,
			})
		}
		plan.Days = append(plan.Days, day)
	}
	plan.TotalCost = math.Round(total*100) / 100
	plan.Approvals.ProjectHead = domain.PlanApproval{
		Approved:   true,
		ApprovedBy: &actorID,
		ApprovedAt: &now,
	}

	c.Plan = plan
	c.Status = domain.CasePlanningInProgress

	// the submitted plan opens one approval task per remaining approver
	move := domain.TaskMove{Open: []*domain.Task{
		{CaseID: c.ID, Type: domain.TaskPlanApproval, AssigneeRole: domain.RoleAdmin, Status: domain.TaskOpen},
		{CaseID: c.ID, Type: domain.TaskPlanApproval, AssigneeRole: domain.RoleClient, Status: domain.TaskOpen},
	}}

	err = s.cases.SaveCASWithEffects(ctx, c, move, &domain.Activity{
		CaseID:  c.ID,
		ActorID: actorID,
		Kind:    "plan_submitted",
		Message: fmt.Sprintf("Execution plan submitted, %d days, total cost %.2f", len(plan.Days), plan.TotalCost),
		TraceID: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("plan_submitted", c.ID, plan.TotalCost)
	}
	return c, nil
}

// Approve flips the caller's party flag. Flags are one-way; an already-true
// flag is an idempotent no-op. When admin and client are both true the
// activation batch runs: case status, plan lock and cost-center init commit
// together, exactly once — the Locked guard is what keeps a retried approval
// from re-zeroing SpentAmount after spending has begun.
//
// Activation rule: admin + client. The preparer's flag is recorded on submit
// but is not required for activation.
func (s *Service) Approve(ctx context.Context, actorID int64, actorRole domain.UserRole, caseID int64) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrCaseNotFound
	}
	if c.Plan == nil {
		return nil, ErrNoPlan
	}

	var flag *domain.PlanApproval
	switch actorRole {
	case domain.RoleProjectHead:
		flag = &c.Plan.Approvals.ProjectHead
	case domain.RoleAdmin:
		flag = &c.Plan.Approvals.Admin
	case domain.RoleClient:
		flag = &c.Plan.Approvals.Client
	default:
		return nil, ErrForbidden
	}

	if flag.Approved {
		return c, nil
	}
	if c.Plan.Locked {
		// a locked plan only happens after activation; nothing left to approve
		return c, nil
	}

	now := time.Now()
	*flag = domain.PlanApproval{Approved: true, ApprovedBy: &actorID, ApprovedAt: &now}

	activities := []*domain.Activity{{
		CaseID:  c.ID,
		ActorID: actorID,
		Kind:    "plan_approved",
		Message: fmt.Sprintf("Execution plan approved by %s", actorRole),
		TraceID: uuid.NewString(),
	}}

	move := domain.TaskMove{
		CompleteType: domain.TaskPlanApproval,
		CompleteRole: actorRole,
		CompletedBy:  actorID,
	}

	activated := false
	if c.Plan.Approvals.Admin.Approved && c.Plan.Approvals.Client.Approved && !c.Plan.Locked {
		c.Plan.Locked = true
		c.Status = domain.CaseExecutionActive
		c.IsProject = true
		c.CostCenter = &domain.CostCenter{
			TotalBudget:     c.Plan.TotalCost,
			SpentAmount:     0,
			RemainingAmount: c.Plan.TotalCost,
		}
		activated = true
		// activation sweeps any approval task still open, whoever it was for
		move.CompleteRole = ""
		activities = append(activities, &domain.Activity{
			CaseID:  c.ID,
			ActorID: actorID,
			Kind:    "execution_activated",
			Message: fmt.Sprintf("Execution activated, cost center funded with %.2f", c.Plan.TotalCost),
			TraceID: uuid.NewString(),
		})
	}

	if err := s.cases.SaveCASWithEffects(ctx, c, move, activities...); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("plan_approved", c.ID, string(actorRole))
		if activated {
			s.events.PublishCaseEvent("execution_activated", c.ID, c.CostCenter.TotalBudget)
		}
	}
	return c, nil
}

// Reject nulls the whole plan and resets every approval flag — full redo,
// no partial plan survives. Only legal before activation.
func (s *Service) Reject(ctx context.Context, actorID int64, actorRole domain.UserRole, caseID int64) (*domain.Case, error) {
	if actorRole != domain.RoleAdmin && actorRole != domain.RoleClient {
		return nil, ErrForbidden
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrCaseNotFound
	}
	if c.Plan == nil {
		return nil, ErrNoPlan
	}
	if c.Plan.Locked {
		return nil, domain.ErrPlanLocked
	}

	c.Plan = nil
	c.Status = domain.CaseWaitingForPlanning

	// a dead plan leaves no approval tasks behind
	move := domain.TaskMove{CompleteType: domain.TaskPlanApproval, CompletedBy: actorID}

	err = s.cases.SaveCASWithEffects(ctx, c, move, &domain.Activity{
		CaseID:  c.ID,
		ActorID: actorID,
		Kind:    "plan_rejected",
		Message: fmt.Sprintf("Execution plan rejected by %s, planning restarts", actorRole),
		TraceID: uuid.NewString(),
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("plan_rejected", c.ID, string(actorRole))
	}
	return c, nil
}

// RecordExpense spends against the cost center. Requires an activated plan;
// the version guard keeps two concurrent spends from losing one another.
func (s *Service) RecordExpense(ctx context.Context, actorID int64, actorRole domain.UserRole, caseID int64, req ExpenseRequest) (*domain.Case, error) {
	switch actorRole {
	case domain.RoleAdmin, domain.RoleAccounts, domain.RoleProcurement:
	default:
		return nil, ErrForbidden
	}
	if req.Amount <= 0 {
		return nil, ErrValidation
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, ErrCaseNotFound
	}
	if c.Plan == nil || !c.Plan.Locked || c.CostCenter == nil {
		return nil, ErrNoCostCenter
	}

	c.CostCenter.SpentAmount = round2(c.CostCenter.SpentAmount + req.Amount)
	c.CostCenter.RemainingAmount = round2(c.CostCenter.TotalBudget - c.CostCenter.SpentAmount)

	err = s.cases.RecordExpense(ctx, c, &domain.Expense{
		CaseID:    c.ID,
		Amount:    req.Amount,
		Note:      req.Note,
		CreatedBy: actorID,
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.PublishCaseEvent("expense_recorded", c.ID, req.Amount)
	}
	return c, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
