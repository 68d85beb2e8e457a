package execplan

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrForbidden    = errors.New("forbidden")
	ErrCaseNotFound = errors.New("case not found")
	ErrNoPlan       = errors.New("case has no execution plan")
	ErrNoDays       = errors.New("plan needs at least one day")
	ErrNoCostCenter = errors.New("cost center is not initialized")
	ErrResubmit     = errors.New("plan already submitted, reject it before resubmitting")
)
