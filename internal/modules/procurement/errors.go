package procurement

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("procurement plan not found")
	ErrPlanNotActive = errors.New("execution plan is not activated")
	ErrNotInPlan     = errors.New("material line is not in the execution plan")
)
