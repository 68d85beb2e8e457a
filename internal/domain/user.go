package domain

import "time"

type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleProjectHead UserRole = "project_head"
	RoleAuditor     UserRole = "auditor"
	RoleProcurement UserRole = "procurement"
	RoleAccounts    UserRole = "accounts"
	RoleClient      UserRole = "client"
	RoleVendor      UserRole = "vendor"
)

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone,omitempty"`
	// Vendors authenticate like everyone else; VendorID links the login
	// to the directory entry it bids on behalf of.
	VendorID  *int64    `json:"vendor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
