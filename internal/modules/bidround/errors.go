package bidround

import "errors"

var (
	ErrValidation       = errors.New("validation error")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("bid round not found")
	ErrNotApproved      = errors.New("quotation is not approved")
	ErrNoVendors        = errors.New("at least one invited vendor is required")
	ErrVendorNotInvited = errors.New("vendor is not invited to this round")
	ErrNoBidFromVendor  = errors.New("vendor has not submitted a bid")
)
