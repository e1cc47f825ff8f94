package repository

import (
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
)

// Repository holds one repository per table group
type Repository struct {
	Catalog    *CatalogRepository
	UserRole   *UserRoleRepository
	Profile    *ProfileRepository
	Staff      *StaffRepository
	Booking    *BookingRepository
	Assignment *AssignmentRepository
	Earnings   *EarningsRepository
}

func NewRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *Repository {
	return &Repository{
		Catalog:    NewCatalogRepository(db, cfg, log),
		UserRole:   NewUserRoleRepository(db, cfg, log),
		Profile:    NewProfileRepository(db, cfg, log),
		Staff:      NewStaffRepository(db, cfg, log),
		Booking:    NewBookingRepository(db, cfg, log),
		Assignment: NewAssignmentRepository(db, cfg, log),
		Earnings:   NewEarningsRepository(db, cfg, log),
	}
}

func (r *Repository) GetCatalogRepository() CatalogRepositoryInterface       { return r.Catalog }
func (r *Repository) GetUserRoleRepository() UserRoleRepositoryInterface     { return r.UserRole }
func (r *Repository) GetProfileRepository() ProfileRepositoryInterface       { return r.Profile }
func (r *Repository) GetStaffRepository() StaffRepositoryInterface           { return r.Staff }
func (r *Repository) GetBookingRepository() BookingRepositoryInterface       { return r.Booking }
func (r *Repository) GetAssignmentRepository() AssignmentRepositoryInterface { return r.Assignment }
func (r *Repository) GetEarningsRepository() EarningsRepositoryInterface     { return r.Earnings }
