package bidround

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"fitflow/internal/domain"
)

// Mock repositories
type MockBidRoundRepository struct {
	mock.Mock
}

func (m *MockBidRoundRepository) Create(ctx context.Context, round *domain.BidRound) error {
	args := m.Called(ctx, round)
	if round != nil {
		round.ID = 50 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBidRoundRepository) GetByID(ctx context.Context, id int64) (*domain.BidRound, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BidRound), args.Error(1)
}

func (m *MockBidRoundRepository) ListByCase(ctx context.Context, caseID int64) ([]domain.BidRound, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BidRound), args.Error(1)
}

func (m *MockBidRoundRepository) UpsertBid(ctx context.Context, roundID int64, bid *domain.Bid) error {
	args := m.Called(ctx, roundID, bid)
	return args.Error(0)
}

func (m *MockBidRoundRepository) SelectVendor(ctx context.Context, roundID, vendorID int64) error {
	args := m.Called(ctx, roundID, vendorID)
	return args.Error(0)
}

func (m *MockBidRoundRepository) SetAdminApproval(ctx context.Context, roundID, adminID int64) (bool, error) {
	args := m.Called(ctx, roundID, adminID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBidRoundRepository) Lock(ctx context.Context, round *domain.BidRound, actorID int64, traceID string) error {
	args := m.Called(ctx, round, actorID, traceID)
	return args.Error(0)
}

func (m *MockBidRoundRepository) Close(ctx context.Context, roundID int64) error {
	args := m.Called(ctx, roundID)
	return args.Error(0)
}

type MockQuotationRepository struct {
	mock.Mock
}

func (m *MockQuotationRepository) GetByID(ctx context.Context, id int64) (*domain.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) ExistByIDs(ctx context.Context, ids []int64) (bool, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newTestService() (*Service, *MockBidRoundRepository, *MockQuotationRepository, *MockVendorRepository, *MockUserRepository) {
	rounds := new(MockBidRoundRepository)
	quotations := new(MockQuotationRepository)
	vendors := new(MockVendorRepository)
	users := new(MockUserRepository)
	return NewService(rounds, quotations, vendors, users, nil), rounds, quotations, vendors, users
}

func openRound() *domain.BidRound {
	return &domain.BidRound{
		ID:               50,
		CaseID:           1,
		QuotationID:      100,
		InvitedVendorIDs: domain.Int64Set{1, 2},
		Status:           domain.RoundOpen,
		Bids: []domain.Bid{
			{RoundID: 50, VendorID: 1, TotalAmount: 90000, DeliveryDays: 10},
			{RoundID: 50, VendorID: 2, TotalAmount: 85000, DeliveryDays: 14},
		},
	}
}

func TestService_CreateRound_RequiresApprovedQuotation(t *testing.T) {
	svc, _, quotations, _, _ := newTestService()

	quotations.On("GetByID", mock.Anything, int64(100)).
		Return(&domain.Quotation{ID: 100, CaseID: 1, AuditStatus: domain.AuditPending}, nil)

	_, err := svc.CreateRound(context.Background(), 9, domain.RoleProcurement, CreateRoundRequest{
		QuotationID:      100,
		InvitedVendorIDs: []int64{1, 2},
	})
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestService_CreateRound_SnapshotsItemLines(t *testing.T) {
	svc, rounds, quotations, vendors, _ := newTestService()

	quotations.On("GetByID", mock.Anything, int64(100)).Return(&domain.Quotation{
		ID: 100, CaseID: 1, AuditStatus: domain.AuditApproved,
		Items: []domain.QuotationItem{
			{CatalogItemID: 7, Quantity: 40, UnitPrice: 650},
		},
	}, nil)
	vendors.On("ExistByIDs", mock.Anything, []int64{1, 2}).Return(true, nil)
	rounds.On("Create", mock.Anything, mock.Anything).Return(nil)

	round, err := svc.CreateRound(context.Background(), 9, domain.RoleProcurement, CreateRoundRequest{
		QuotationID:      100,
		InvitedVendorIDs: []int64{1, 2},
	})

	assert.NoError(t, err)
	assert.Len(t, round.ItemLines, 1)
	assert.Equal(t, int64(7), round.ItemLines[0].CatalogItemID)
	assert.Equal(t, domain.RoundOpen, round.Status)
}

func TestService_SubmitBid_VendorResubmits(t *testing.T) {
	svc, rounds, _, _, users := newTestService()

	vendorID := int64(1)
	users.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.User{ID: 20, Role: domain.RoleVendor, VendorID: &vendorID}, nil)
	rounds.On("GetByID", mock.Anything, int64(50)).Return(openRound(), nil)
	rounds.On("UpsertBid", mock.Anything, int64(50), mock.Anything).Return(nil)

	_, err := svc.SubmitBid(context.Background(), 20, domain.RoleVendor, 50, SubmitBidRequest{
		VendorID: 1, TotalAmount: 88000, DeliveryDays: 9,
	})

	assert.NoError(t, err)
	rounds.AssertCalled(t, "UpsertBid", mock.Anything, int64(50), mock.Anything)
}

func TestService_SubmitBid_VendorCannotBidForAnother(t *testing.T) {
	svc, _, _, _, users := newTestService()

	vendorID := int64(1)
	users.On("GetByID", mock.Anything, int64(20)).
		Return(&domain.User{ID: 20, Role: domain.RoleVendor, VendorID: &vendorID}, nil)

	_, err := svc.SubmitBid(context.Background(), 20, domain.RoleVendor, 50, SubmitBidRequest{
		VendorID: 2, TotalAmount: 80000, DeliveryDays: 7,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestService_SubmitBid_UninvitedVendor(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	rounds.On("GetByID", mock.Anything, int64(50)).Return(openRound(), nil)

	_, err := svc.SubmitBid(context.Background(), 9, domain.RoleProcurement, 50, SubmitBidRequest{
		VendorID: 99, TotalAmount: 70000, DeliveryDays: 5,
	})
	assert.ErrorIs(t, err, ErrVendorNotInvited)
}

func TestService_SubmitBid_LockedRoundIsTerminal(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	locked := openRound()
	now := time.Now()
	locked.LockedAt = &now
	locked.Status = domain.RoundClosed
	rounds.On("GetByID", mock.Anything, int64(50)).Return(locked, nil)

	_, err := svc.SubmitBid(context.Background(), 9, domain.RoleAdmin, 50, SubmitBidRequest{
		VendorID: 1, TotalAmount: 80000, DeliveryDays: 8,
	})

	assert.ErrorIs(t, err, domain.ErrRoundLocked)
	rounds.AssertNotCalled(t, "UpsertBid", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SelectVendor_RequiresBid(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	round := openRound()
	round.Bids = round.Bids[:1] // only vendor 1 has bid
	rounds.On("GetByID", mock.Anything, int64(50)).Return(round, nil)

	_, err := svc.SelectVendor(context.Background(), 9, domain.RoleProcurement, 50, 2)
	assert.ErrorIs(t, err, ErrNoBidFromVendor)
}

func TestService_Lock_RequiresSelection(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	rounds.On("GetByID", mock.Anything, int64(50)).Return(openRound(), nil)

	_, err := svc.Lock(context.Background(), 9, domain.RoleAdmin, 50)
	assert.ErrorIs(t, err, domain.ErrNoVendorSelected)
}

func TestService_Lock_RequiresAdminApproval(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	round := openRound()
	selected := int64(2)
	round.SelectedVendorID = &selected
	rounds.On("GetByID", mock.Anything, int64(50)).Return(round, nil)

	_, err := svc.Lock(context.Background(), 9, domain.RoleAdmin, 50)
	assert.ErrorIs(t, err, domain.ErrNotAdminApproved)
}

func TestService_Lock_HappyPath(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	round := openRound()
	selected := int64(2)
	now := time.Now()
	adminID := int64(9)
	round.SelectedVendorID = &selected
	round.AdminApprovedAt = &now
	round.AdminApprovedBy = &adminID
	rounds.On("GetByID", mock.Anything, int64(50)).Return(round, nil).Once()
	rounds.On("Lock", mock.Anything, round, int64(9), mock.Anything).Return(nil)

	locked := openRound()
	locked.SelectedVendorID = &selected
	locked.LockedAt = &now
	locked.Status = domain.RoundClosed
	rounds.On("GetByID", mock.Anything, int64(50)).Return(locked, nil)

	got, err := svc.Lock(context.Background(), 9, domain.RoleAdmin, 50)

	assert.NoError(t, err)
	assert.True(t, got.IsLocked())
}

func TestService_Lock_AlreadyLocked(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	round := openRound()
	now := time.Now()
	round.LockedAt = &now
	rounds.On("GetByID", mock.Anything, int64(50)).Return(round, nil)

	_, err := svc.Lock(context.Background(), 9, domain.RoleAdmin, 50)

	assert.ErrorIs(t, err, domain.ErrRoundLocked)
	rounds.AssertNotCalled(t, "Lock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_SetAdminApproval_Idempotent(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	round := openRound()
	selected := int64(2)
	now := time.Now()
	adminID := int64(9)
	round.SelectedVendorID = &selected
	round.AdminApprovedAt = &now
	round.AdminApprovedBy = &adminID
	rounds.On("GetByID", mock.Anything, int64(50)).Return(round, nil)
	// repository reports nothing stamped on the second call
	rounds.On("SetAdminApproval", mock.Anything, int64(50), int64(9)).Return(false, nil)

	got, err := svc.SetAdminApproval(context.Background(), 9, domain.RoleAdmin, 50)

	assert.NoError(t, err)
	assert.NotNil(t, got.AdminApprovedAt)
}

func TestService_SetAdminApproval_RequiresSelection(t *testing.T) {
	svc, rounds, _, _, _ := newTestService()

	rounds.On("GetByID", mock.Anything, int64(50)).Return(openRound(), nil)

	_, err := svc.SetAdminApproval(context.Background(), 9, domain.RoleAdmin, 50)
	assert.ErrorIs(t, err, domain.ErrNoVendorSelected)
}
