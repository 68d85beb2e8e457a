package domain

import "errors"

// Workflow state errors cross the repository/service boundary: the guarded
// UPDATE inside an atomic batch is what actually detects an illegal move
// under concurrency, so the sentinel lives here rather than in a module.
var (
	ErrAlreadyAudited    = errors.New("quotation already audited")
	ErrBOQLocked         = errors.New("boq is locked")
	ErrRoundLocked       = errors.New("bid round is locked")
	ErrRoundClosed       = errors.New("bid round is closed")
	ErrNoVendorSelected  = errors.New("no vendor selected")
	ErrNotAdminApproved  = errors.New("selection is not admin approved")
	ErrPlanLocked        = errors.New("execution plan is locked")
	ErrAlreadyScheduled  = errors.New("material line already scheduled")
	ErrIllegalTransition = errors.New("illegal status transition")
)
