package casefile

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("case not found")
	ErrNotPresale = errors.New("case is not in a pre-sale status")
)
