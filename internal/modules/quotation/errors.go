package quotation

import "errors"

var (
	ErrValidation = errors.New("validation error")
	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("quotation not found")
	ErrNoItems    = errors.New("quotation needs at least one item")
	ErrBadRate    = errors.New("every item needs quantity > 0 and unit price > 0")
	ErrNoReason   = errors.New("rejection reason is required")
)
