package repository

import (
	"context"
	"homeserve-backend/models"
)

// CatalogRepositoryInterface defines the contract for catalog reads
type CatalogRepositoryInterface interface {
	ListCategories(ctx context.Context) ([]*models.ServiceCategory, error)
	ListPackages(ctx context.Context, filter *models.PackageFilter) ([]*models.Package, error)
	GetPackage(ctx context.Context, id string) (*models.Package, error)
	GetPackagesByIDs(ctx context.Context, ids []string) (map[string]*models.Package, error)
	ListPanchayaths(ctx context.Context) ([]*models.Panchayath, error)
	GetPanchayath(ctx context.Context, id string) (*models.Panchayath, error)
	GetPanchayathsByIDs(ctx context.Context, ids []string) (map[string]*models.Panchayath, error)
}

// UserRoleRepositoryInterface defines the contract for role lookups
type UserRoleRepositoryInterface interface {
	ListUserIDsByRole(ctx context.Context, role models.UserRole) ([]string, error)
}

// ProfileRepositoryInterface defines the contract for profile reads
type ProfileRepositoryInterface interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	GetProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.Profile, error)
}

// StaffRepositoryInterface defines the contract for staff details and coverage
type StaffRepositoryInterface interface {
	GetDetailsByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.StaffDetails, error)
	UpsertDetails(ctx context.Context, details *models.StaffDetails) (*models.StaffDetails, error)
	ListPanchayathAssignmentsByStaff(ctx context.Context, staffUserIDs []string) (map[string][]*models.StaffPanchayathAssignment, error)
	ListPanchayathAssignmentsByPanchayath(ctx context.Context, panchayathID string) ([]*models.StaffPanchayathAssignment, error)
}

// BookingRepositoryInterface defines the contract for booking storage
type BookingRepositoryInterface interface {
	CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingsByIDs(ctx context.Context, ids []string) (map[string]*models.Booking, error)
	GetBookingsByFilter(ctx context.Context, filter *models.BookingFilter) ([]*models.Booking, error)
	ListByStatusInPanchayaths(ctx context.Context, status models.BookingStatus, panchayathIDs []string) ([]*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedBy string) (*models.Booking, error)
}

// AssignmentRepositoryInterface defines the contract for booking staff assignments
type AssignmentRepositoryInterface interface {
	CreateAssignment(ctx context.Context, a *models.BookingStaffAssignment) (*models.BookingStaffAssignment, error)
	ClaimAcceptSlot(ctx context.Context, a *models.BookingStaffAssignment, slot int) (*models.BookingStaffAssignment, error)
	GetAssignment(ctx context.Context, id string) (*models.BookingStaffAssignment, error)
	ListByBooking(ctx context.Context, bookingID string) ([]*models.BookingStaffAssignment, error)
	ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]*models.BookingStaffAssignment, error)
	ListByStaff(ctx context.Context, staffUserID string) ([]*models.BookingStaffAssignment, error)
	DeleteByBooking(ctx context.Context, bookingID string) error
	UpdateStatus(ctx context.Context, id string, status models.AssignmentStatus) (*models.BookingStaffAssignment, error)
}

// EarningsRepositoryInterface defines the contract for staff earnings
type EarningsRepositoryInterface interface {
	ListByStaff(ctx context.Context, staffUserID string) ([]*models.StaffEarning, error)
}

// RepositoryContainerInterface defines the contract for the repository container
type RepositoryContainerInterface interface {
	GetCatalogRepository() CatalogRepositoryInterface
	GetUserRoleRepository() UserRoleRepositoryInterface
	GetProfileRepository() ProfileRepositoryInterface
	GetStaffRepository() StaffRepositoryInterface
	GetBookingRepository() BookingRepositoryInterface
	GetAssignmentRepository() AssignmentRepositoryInterface
	GetEarningsRepository() EarningsRepositoryInterface
}
