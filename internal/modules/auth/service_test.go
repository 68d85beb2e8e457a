package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fitflow/internal/domain"
)

// Mock repositories
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 1 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockVendorReader struct {
	mock.Mock
}

func (m *MockVendorReader) GetByID(ctx context.Context, id int64) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

type fakeJWT struct{}

func (fakeJWT) GenerateToken(userID int64, role domain.UserRole) (string, error) {
	return "token", nil
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockVendorReader), fakeJWT{})

	users.On("ExistsByEmail", mock.Anything, "head@fitflow.in").Return(false, nil)
	users.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, token, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Project Head",
		Email:    "  Head@FitFlow.in ",
		Password: "secret123",
		Role:     "project_head",
	})

	assert.NoError(t, err)
	assert.Equal(t, "head@fitflow.in", user.Email)
	assert.Equal(t, "token", token)
	assert.Empty(t, user.PasswordHash)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockVendorReader), fakeJWT{})

	users.On("ExistsByEmail", mock.Anything, "head@fitflow.in").Return(true, nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "X", Email: "head@fitflow.in", Password: "secret123", Role: "project_head",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestService_Register_VendorNeedsVendorID(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockVendorReader), fakeJWT{})

	users.On("ExistsByEmail", mock.Anything, mock.Anything).Return(false, nil)

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "X", Email: "v@fitflow.in", Password: "secret123", Role: "vendor",
	})
	assert.ErrorIs(t, err, ErrVendorRequired)
}

func TestService_Register_UnknownRole(t *testing.T) {
	svc := NewService(new(MockUserRepository), new(MockVendorReader), fakeJWT{})

	_, _, err := svc.Register(context.Background(), RegisterRequest{
		Name: "X", Email: "x@fitflow.in", Password: "secret123", Role: "superuser",
	})
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestService_Login(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockVendorReader), fakeJWT{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "head@fitflow.in").Return(&domain.User{
		ID: 1, Email: "head@fitflow.in", PasswordHash: string(hash), Role: domain.RoleProjectHead,
	}, nil)

	result, err := svc.Login(context.Background(), LoginRequest{Email: "head@fitflow.in", Password: "secret123"})

	assert.NoError(t, err)
	assert.Equal(t, "token", result.Token)
	assert.Empty(t, result.User.PasswordHash)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockVendorReader), fakeJWT{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	users.On("GetByEmail", mock.Anything, "head@fitflow.in").Return(&domain.User{
		ID: 1, PasswordHash: string(hash),
	}, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "head@fitflow.in", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	svc := NewService(users, new(MockVendorReader), fakeJWT{})

	users.On("GetByEmail", mock.Anything, "ghost@fitflow.in").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@fitflow.in", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
