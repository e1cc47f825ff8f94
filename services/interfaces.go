package services

import (
	"context"
	"homeserve-backend/models"
)

// CatalogServiceInterface defines the contract for catalog reads
type CatalogServiceInterface interface {
	ListPackages(ctx context.Context, filter *models.PackageFilter) ([]*models.Package, error)
	GetPackage(ctx context.Context, id string) (*models.Package, error)
	ListCategories(ctx context.Context) ([]*models.ServiceCategory, error)
	ListPanchayaths(ctx context.Context) ([]*models.Panchayath, error)
	GetWards(ctx context.Context, panchayathID string) ([]int, error)
	ListAddOns() []models.AddOn
}

// BookingServiceInterface defines the contract for the booking wizard and lifecycle
type BookingServiceInterface interface {
	ValidatePropertyDetails(ctx context.Context, req *models.ValidatePropertyRequest) (*models.PropertyCheck, error)
	QuoteAddOns(ctx context.Context, req *models.QuoteAddOnsRequest) (*models.AddOnQuote, error)
	PrefillBookingForm(ctx context.Context, userID string) (*models.BookingFormData, error)
	CreateBooking(ctx context.Context, customerID string, req *models.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, filter *models.BookingFilter) ([]*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus, updatedBy string) (*models.Booking, error)
}

// StaffServiceInterface defines the contract for admin staff management
type StaffServiceInterface interface {
	ListStaff(ctx context.Context) ([]*models.StaffMember, error)
	StaffByPanchayath(ctx context.Context, panchayathID string) ([]*models.StaffContact, error)
	AssignStaffToBooking(ctx context.Context, bookingID string, staffUserIDs []string) ([]*models.BookingStaffAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status models.AssignmentStatus, actor *models.JWTClaims) (*models.BookingStaffAssignment, error)
	UpdateStaffDetails(ctx context.Context, userID string, req *models.UpdateStaffDetailsRequest) (*models.StaffDetails, error)
}

// JobServiceInterface defines the contract for staff job views
type JobServiceInterface interface {
	MyJobs(ctx context.Context, userID string) ([]*models.MyJob, error)
	AvailableJobs(ctx context.Context, userID string) ([]*models.AvailableJob, error)
	RefreshAvailableJobs(ctx context.Context, userID string) error
	WatchedStaff() []string
	AcceptJob(ctx context.Context, bookingID, staffUserID string) (*models.BookingStaffAssignment, error)
	MyEarnings(ctx context.Context, userID string) ([]*models.StaffEarning, error)
}

// InfrastructureServiceInterface defines the contract for infrastructure service
type InfrastructureServiceInterface interface {
	GetWorkerStatus(ctx context.Context) (*models.ExecutionResult, error)
	CheckTables(ctx context.Context) ([]models.TableStatus, error)
}

// ServiceContainerInterface defines the main service container contract
type ServiceContainerInterface interface {
	GetCatalogService() CatalogServiceInterface
	GetBookingService() BookingServiceInterface
	GetStaffService() StaffServiceInterface
	GetJobService() JobServiceInterface
	GetInfrastructureService() InfrastructureServiceInterface
}
