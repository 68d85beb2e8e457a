package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type CaseStatus string

const (
	CaseLead               CaseStatus = "LEAD"
	CaseSurvey             CaseStatus = "SURVEY"
	CaseDrawing            CaseStatus = "DRAWING"
	CaseBOQ                CaseStatus = "BOQ"
	CaseQuotation          CaseStatus = "QUOTATION"
	CaseWaitingForPlanning CaseStatus = "WAITING_FOR_PLANNING"
	CasePlanningInProgress CaseStatus = "PLANNING_IN_PROGRESS"
	CaseExecutionActive    CaseStatus = "EXECUTION_ACTIVE"
	CaseCompleted          CaseStatus = "COMPLETED"
	CaseLost               CaseStatus = "LOST"
)

// presalePipeline is the ordered pre-sale path; planning and execution
// statuses are reached only through the workflow transitions.
var presalePipeline = []CaseStatus{
	CaseLead, CaseSurvey, CaseDrawing, CaseBOQ, CaseQuotation,
}

// NextPresaleStatus returns the status after s in the pre-sale pipeline,
// or "" when s is not a pre-sale status or is the last one.
func NextPresaleStatus(s CaseStatus) CaseStatus {
	for i, st := range presalePipeline {
		if st == s && i+1 < len(presalePipeline) {
			return presalePipeline[i+1]
		}
	}
	return ""
}

type PlanMaterial struct {
	CatalogItemID int64     `json:"catalog_item_id"`
	Quantity      float64   `json:"quantity"`
	RequiredOn    time.Time `json:"required_on"`
}

type PlanDay struct {
	DayNumber int            `json:"day_number"`
	Title     string         `json:"title"`
	Materials []PlanMaterial `json:"materials,omitempty"`
	LaborCost float64        `json:"labor_cost"`
}

type PlanApproval struct {
	Approved   bool       `json:"approved"`
	ApprovedBy *int64     `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

type PlanApprovals struct {
	ProjectHead PlanApproval `json:"project_head"`
	Admin       PlanApproval `json:"admin"`
	Client      PlanApproval `json:"client"`
}

// ExecutionPlan is embedded on the Case as a JSON column. Locked flips true
// exactly once, in the activation batch, and guards cost-center re-init.
type ExecutionPlan struct {
	Days       []PlanDay     `json:"days"`
	Approvals  PlanApprovals `json:"approvals"`
	TotalCost  float64       `json:"total_cost"`
	Locked     bool          `json:"locked"`
	PreparedBy int64         `json:"prepared_by"`
	PreparedAt time.Time     `json:"prepared_at"`
}

// MaterialLines flattens every material requirement across all days.
func (p *ExecutionPlan) MaterialLines() []PlanMaterial {
	if p == nil {
		return nil
	}
	var out []PlanMaterial
	for _, d := range p.Days {
		out = append(out, d.Materials...)
	}
	return out
}

// CostCenter is created exactly once, when the plan activation batch runs.
type CostCenter struct {
	TotalBudget     float64 `json:"total_budget"`
	SpentAmount     float64 `json:"spent_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
}

type Case struct {
	ID         int64          `json:"id"`
	Number     string         `json:"number"`
	Title      string         `json:"title"`
	ClientName string         `json:"client_name"`
	ClientID   *int64         `json:"client_id,omitempty"`
	Status     CaseStatus     `json:"status"`
	IsProject  bool           `json:"is_project"`
	Budget     float64        `json:"budget"`
	Plan       *ExecutionPlan `json:"execution_plan,omitempty" gorm:"column:execution_plan;type:json"`
	CostCenter *CostCenter    `json:"cost_center,omitempty" gorm:"type:json"`
	// Version guards every Case write: a stale read surfaces as
	// ErrVersionConflict instead of silently overwriting a concurrent write.
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Case) TableName() string { return "cases" }

var ErrVersionConflict = errors.New("case was modified concurrently, reload and retry")

// Expense is one spending entry against a case's cost center. The ledger row
// makes spending observable independently of the embedded running totals.
type Expense struct {
	ID        int64     `json:"id"`
	CaseID    int64     `json:"case_id"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty" gorm:"type:text"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Value / Scan let gorm persist the embedded objects as JSON columns.

func (p *ExecutionPlan) Value() (driver.Value, error) {
	if p == nil {
		return nil, nil
	}
	return json.Marshal(p)
}

func (p *ExecutionPlan) Scan(src any) error {
	return scanJSON(src, p)
}

func (c *CostCenter) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func (c *CostCenter) Scan(src any) error {
	return scanJSON(src, c)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported json column type %T", src)
	}
}
