package services

import (
	"context"
	"homeserve-backend/models"
	"homeserve-backend/repository"

	"github.com/stretchr/testify/mock"
)

// MockLogger implements the logger interface for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(args ...interface{}) {
	m.Called(args)
}

func (m *MockLogger) Debugf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Info(args ...interface{}) {
	m.Called(args)
}

func (m *MockLogger) Infof(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(args ...interface{}) {
	m.Called(args)
}

func (m *MockLogger) Warnf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Error(args ...interface{}) {
	m.Called(args)
}

func (m *MockLogger) Errorf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockLogger) Fatal(args ...interface{}) {
	m.Called(args)
}

func (m *MockLogger) Fatalf(format string, args ...interface{}) {
	m.Called(format, args)
}

func newMockLogger() *MockLogger {
	l := &MockLogger{}
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		l.On(method, mock.Anything).Maybe()
	}
	for _, method := range []string{"Debugf", "Infof", "Warnf", "Errorf"} {
		l.On(method, mock.Anything, mock.Anything).Maybe()
	}
	return l
}

// MockCatalogRepository implements CatalogRepositoryInterface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context) ([]*models.ServiceCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceCategory), args.Error(1)
}

func (m *MockCatalogRepository) ListPackages(ctx context.Context, filter *models.PackageFilter) ([]*models.Package, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Package), args.Error(1)
}

func (m *MockCatalogRepository) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *MockCatalogRepository) GetPackagesByIDs(ctx context.Context, ids []string) (map[string]*models.Package, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Package), args.Error(1)
}

func (m *MockCatalogRepository) ListPanchayaths(ctx context.Context) ([]*models.Panchayath, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Panchayath), args.Error(1)
}

func (m *MockCatalogRepository) GetPanchayath(ctx context.Context, id string) (*models.Panchayath, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Panchayath), args.Error(1)
}

func (m *MockCatalogRepository) GetPanchayathsByIDs(ctx context.Context, ids []string) (map[string]*models.Panchayath, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Panchayath), args.Error(1)
}

// MockUserRoleRepository implements UserRoleRepositoryInterface
type MockUserRoleRepository struct {
	mock.Mock
}

func (m *MockUserRoleRepository) ListUserIDsByRole(ctx context.Context, role models.UserRole) ([]string, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockProfileRepository implements ProfileRepositoryInterface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.Profile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Profile), args.Error(1)
}

// MockStaffRepository implements StaffRepositoryInterface
type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) GetDetailsByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.StaffDetails, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.StaffDetails), args.Error(1)
}

func (m *MockStaffRepository) UpsertDetails(ctx context.Context, details *models.StaffDetails) (*models.StaffDetails, error) {
	args := m.Called(ctx, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffDetails), args.Error(1)
}

func (m *MockStaffRepository) ListPanchayathAssignmentsByStaff(ctx context.Context, staffUserIDs []string) (map[string][]*models.StaffPanchayathAssignment, error) {
	args := m.Called(ctx, staffUserIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*models.StaffPanchayathAssignment), args.Error(1)
}

func (m *MockStaffRepository) ListPanchayathAssignmentsByPanchayath(ctx context.Context, panchayathID string) ([]*models.StaffPanchayathAssignment, error) {
	args := m.Called(ctx, panchayathID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StaffPanchayathAssignment), args.Error(1)
}

// MockBookingRepository implements BookingRepositoryInterface
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	args := m.Called(ctx, booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookingsByIDs(ctx context.Context, ids []string) (map[string]*models.Booking, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetBookingsByFilter(ctx context.Context, filter *models.BookingFilter) ([]*models.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByStatusInPanchayaths(ctx context.Context, status models.BookingStatus, panchayathIDs []string) ([]*models.Booking, error) {
	args := m.Called(ctx, status, panchayathIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedBy string) (*models.Booking, error) {
	args := m.Called(ctx, id, status, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

// MockAssignmentRepository implements AssignmentRepositoryInterface
type MockAssignmentRepository struct {
	mock.Mock
}

func (m *MockAssignmentRepository) CreateAssignment(ctx context.Context, a *models.BookingStaffAssignment) (*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) GetAssignment(ctx context.Context, id string) (*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ClaimAcceptSlot(ctx context.Context, a *models.BookingStaffAssignment, slot int) (*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, a, slot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByBooking(ctx context.Context, bookingID string) ([]*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, bookingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) ListByStaff(ctx context.Context, staffUserID string) ([]*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, staffUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockAssignmentRepository) DeleteByBooking(ctx context.Context, bookingID string) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockAssignmentRepository) UpdateStatus(ctx context.Context, id string, status models.AssignmentStatus) (*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStaffAssignment), args.Error(1)
}

// MockEarningsRepository implements EarningsRepositoryInterface
type MockEarningsRepository struct {
	mock.Mock
}

func (m *MockEarningsRepository) ListByStaff(ctx context.Context, staffUserID string) ([]*models.StaffEarning, error) {
	args := m.Called(ctx, staffUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StaffEarning), args.Error(1)
}

// mockRepositories wires the mocks into a RepositoryContainerInterface
type mockRepositories struct {
	catalog    *MockCatalogRepository
	roles      *MockUserRoleRepository
	profiles   *MockProfileRepository
	staff      *MockStaffRepository
	bookings   *MockBookingRepository
	assignment *MockAssignmentRepository
	earnings   *MockEarningsRepository
}

func newMockRepositories() *mockRepositories {
	return &mockRepositories{
		catalog:    &MockCatalogRepository{},
		roles:      &MockUserRoleRepository{},
		profiles:   &MockProfileRepository{},
		staff:      &MockStaffRepository{},
		bookings:   &MockBookingRepository{},
		assignment: &MockAssignmentRepository{},
		earnings:   &MockEarningsRepository{},
	}
}

func (r *mockRepositories) GetCatalogRepository() repository.CatalogRepositoryInterface   { return r.catalog }
func (r *mockRepositories) GetUserRoleRepository() repository.UserRoleRepositoryInterface { return r.roles }
func (r *mockRepositories) GetProfileRepository() repository.ProfileRepositoryInterface   { return r.profiles }
func (r *mockRepositories) GetStaffRepository() repository.StaffRepositoryInterface       { return r.staff }
func (r *mockRepositories) GetBookingRepository() repository.BookingRepositoryInterface   { return r.bookings }
func (r *mockRepositories) GetAssignmentRepository() repository.AssignmentRepositoryInterface {
	return r.assignment
}
func (r *mockRepositories) GetEarningsRepository() repository.EarningsRepositoryInterface {
	return r.earnings
}

func (r *mockRepositories) assertExpectations(t mock.TestingT) {
	r.catalog.AssertExpectations(t)
	r.roles.AssertExpectations(t)
	r.profiles.AssertExpectations(t)
	r.staff.AssertExpectations(t)
	r.bookings.AssertExpectations(t)
	r.assignment.AssertExpectations(t)
	r.earnings.AssertExpectations(t)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
