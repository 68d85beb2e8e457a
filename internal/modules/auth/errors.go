package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnknownRole        = errors.New("unknown role")
	ErrVendorRequired     = errors.New("vendor accounts must reference a vendor")
	ErrVendorNotFound     = errors.New("vendor not found")
)
