package auth

import (
	"context"

	"fitflow/internal/domain"
)

// UserRepository — only the methods the auth service uses.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, u *domain.User) error
}

type VendorReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Vendor, error)
}
