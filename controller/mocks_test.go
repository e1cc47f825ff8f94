package controller

import (
	"context"
	"homeserve-backend/models"
	"homeserve-backend/services"

	"github.com/stretchr/testify/mock"
)

// MockControllerLogger implements the logger interface for testing
type MockControllerLogger struct {
	mock.Mock
}

func (m *MockControllerLogger) Debug(args ...interface{})                 { m.Called(args) }
func (m *MockControllerLogger) Debugf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockControllerLogger) Info(args ...interface{})                  { m.Called(args) }
func (m *MockControllerLogger) Infof(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockControllerLogger) Warn(args ...interface{})                  { m.Called(args) }
func (m *MockControllerLogger) Warnf(format string, args ...interface{})  { m.Called(format, args) }
func (m *MockControllerLogger) Error(args ...interface{})                 { m.Called(args) }
func (m *MockControllerLogger) Errorf(format string, args ...interface{}) { m.Called(format, args) }
func (m *MockControllerLogger) Fatal(args ...interface{})                 { m.Called(args) }
func (m *MockControllerLogger) Fatalf(format string, args ...interface{}) { m.Called(format, args) }

func newMockLogger() *MockControllerLogger {
	l := &MockControllerLogger{}
	l.On("Debug", mock.Anything).Maybe()
	l.On("Info", mock.Anything).Maybe()
	l.On("Warn", mock.Anything).Maybe()
	l.On("Error", mock.Anything).Maybe()
	l.On("Debugf", mock.Anything, mock.Anything).Maybe()
	l.On("Infof", mock.Anything, mock.Anything).Maybe()
	l.On("Warnf", mock.Anything, mock.Anything).Maybe()
	l.On("Errorf", mock.Anything, mock.Anything).Maybe()
	return l
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListPackages(ctx context.Context, filter *models.PackageFilter) ([]*models.Package, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Package), args.Error(1)
}

func (m *MockCatalogService) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Package), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]*models.ServiceCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ServiceCategory), args.Error(1)
}

func (m *MockCatalogService) ListPanchayaths(ctx context.Context) ([]*models.Panchayath, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Panchayath), args.Error(1)
}

func (m *MockCatalogService) GetWards(ctx context.Context, panchayathID string) ([]int, error) {
	args := m.Called(ctx, panchayathID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockCatalogService) ListAddOns() []models.AddOn {
	args := m.Called()
	return args.Get(0).([]models.AddOn)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) ValidatePropertyDetails(ctx context.Context, req *models.ValidatePropertyRequest) (*models.PropertyCheck, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyCheck), args.Error(1)
}

func (m *MockBookingService) QuoteAddOns(ctx context.Context, req *models.QuoteAddOnsRequest) (*models.AddOnQuote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AddOnQuote), args.Error(1)
}

func (m *MockBookingService) PrefillBookingForm(ctx context.Context, userID string) (*models.BookingFormData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingFormData), args.Error(1)
}

func (m *MockBookingService) CreateBooking(ctx context.Context, customerID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingService) ListBookings(ctx context.Context, filter *models.BookingFilter) ([]*models.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *MockBookingService) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus, updatedBy string) (*models.Booking, error) {
	args := m.Called(ctx, id, status, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

type MockStaffService struct {
	mock.Mock
}

func (m *MockStaffService) ListStaff(ctx context.Context) ([]*models.StaffMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StaffMember), args.Error(1)
}

func (m *MockStaffService) StaffByPanchayath(ctx context.Context, panchayathID string) ([]*models.StaffContact, error) {
	args := m.Called(ctx, panchayathID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StaffContact), args.Error(1)
}

func (m *MockStaffService) AssignStaffToBooking(ctx context.Context, bookingID string, staffUserIDs []string) ([]*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, bookingID, staffUserIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockStaffService) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status models.AssignmentStatus, actor *models.JWTClaims) (*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, assignmentID, status, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockStaffService) UpdateStaffDetails(ctx context.Context, userID string, req *models.UpdateStaffDetailsRequest) (*models.StaffDetails, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StaffDetails), args.Error(1)
}

type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) MyJobs(ctx context.Context, userID string) ([]*models.MyJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MyJob), args.Error(1)
}

func (m *MockJobService) AvailableJobs(ctx context.Context, userID string) ([]*models.AvailableJob, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AvailableJob), args.Error(1)
}

func (m *MockJobService) RefreshAvailableJobs(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockJobService) WatchedStaff() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockJobService) AcceptJob(ctx context.Context, bookingID, staffUserID string) (*models.BookingStaffAssignment, error) {
	args := m.Called(ctx, bookingID, staffUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingStaffAssignment), args.Error(1)
}

func (m *MockJobService) MyEarnings(ctx context.Context, userID string) ([]*models.StaffEarning, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StaffEarning), args.Error(1)
}

// MockInfrastructureService implements InfrastructureServiceInterface for testing
type MockInfrastructureService struct {
	mock.Mock
}

func (m *MockInfrastructureService) GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExecutionResult), args.Error(1)
}

func (m *MockInfrastructureService) CheckTables(ctx context.Context) ([]models.TableStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TableStatus), args.Error(1)
}

// mockServices is a ServiceContainerInterface over the mocks above
type mockServices struct {
	catalog *MockCatalogService
	booking *MockBookingService
	staff   *MockStaffService
	job     *MockJobService
	infra   *MockInfrastructureService
}

func newMockServices() *mockServices {
	return &mockServices{
		catalog: &MockCatalogService{},
		booking: &MockBookingService{},
		staff:   &MockStaffService{},
		job:     &MockJobService{},
		infra:   &MockInfrastructureService{},
	}
}

func (m *mockServices) GetCatalogService() services.CatalogServiceInterface { return m.catalog }
func (m *mockServices) GetBookingService() services.BookingServiceInterface { return m.booking }
func (m *mockServices) GetStaffService() services.StaffServiceInterface     { return m.staff }
func (m *mockServices) GetJobService() services.JobServiceInterface         { return m.job }
func (m *mockServices) GetInfrastructureService() services.InfrastructureServiceInterface {
	return m.infra
}
