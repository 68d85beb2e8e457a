package domain

import "time"

type TaskType string

const (
	TaskQuotationAudit   TaskType = "quotation_audit"
	TaskProcurementAudit TaskType = "procurement_audit"
	TaskPlanApproval     TaskType = "plan_approval"
)

type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskCompleted TaskStatus = "completed"
)

// Task is the handoff document a terminal transition opens for the next
// actor in the chain, and completes for the previous one.
type Task struct {
	ID           int64      `json:"id"`
	CaseID       int64      `json:"case_id"`
	Type         TaskType   `json:"type"`
	AssigneeRole UserRole   `json:"assignee_role"`
	Status       TaskStatus `json:"status"`
	RefID        int64      `json:"ref_id"` // quotation/round id the task points at
	CompletedBy  *int64     `json:"completed_by,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// TaskMove is the queue change a transition commits with: tasks to open for
// the next actors in the chain, and which open tasks count as done. The zero
// value moves nothing.
type TaskMove struct {
	Open         []*Task
	CompleteType TaskType
	CompleteRole UserRole // empty completes the type for every assignee
	CompletedBy  int64
}

// Activity is one append-only human-readable log line per terminal
// transition.
type Activity struct {
	ID        int64     `json:"id"`
	CaseID    int64     `json:"case_id"`
	ActorID   int64     `json:"actor_id"`
	Kind      string    `json:"kind"`
	Message   string    `json:"message" gorm:"type:text"`
	TraceID   string    `json:"trace_id"`
	CreatedAt time.Time `json:"created_at"`
}

type DocumentKind string

const (
	DocQuotation DocumentKind = "quotation"
)

// CaseDocument marks something client-visible. Nothing is client-visible
// until a workflow transition attaches one with VisibleToClient set.
type CaseDocument struct {
	ID              int64        `json:"id"`
	CaseID          int64        `json:"case_id"`
	Kind            DocumentKind `json:"kind"`
	Title           string       `json:"title"`
	RefID           int64        `json:"ref_id"`
	VisibleToClient bool         `json:"visible_to_client"`
	CreatedAt       time.Time    `json:"created_at"`
}
