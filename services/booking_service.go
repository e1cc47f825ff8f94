package services

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/models"
	"homeserve-backend/repository"
	"homeserve-backend/utils/logger"
	"homeserve-backend/utils/querycache"
	"time"
)

// BookingService runs the booking wizard and the booking lifecycle
type BookingService struct {
	catalogRepo repository.CatalogRepositoryInterface
	bookingRepo repository.BookingRepositoryInterface
	profileRepo repository.ProfileRepositoryInterface
	cache       querycache.Cache
	logger      logger.Logger
	config      *models.Config
	now         func() time.Time
}

func NewBookingService(
	catalogRepo repository.CatalogRepositoryInterface,
	bookingRepo repository.BookingRepositoryInterface,
	profileRepo repository.ProfileRepositoryInterface,
	cache querycache.Cache,
	logger logger.Logger,
	config *models.Config,
) *BookingService {
	return &BookingService{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		profileRepo: profileRepo,
		cache:       cache,
		logger:      logger,
		config:      config,
		now:         time.Now,
	}
}

// ValidatePropertyDetails checks the property step for a package
func (s *BookingService) ValidatePropertyDetails(ctx context.Context, req *models.ValidatePropertyRequest) (*models.PropertyCheck, error) {
	pkg, err := s.catalogRepo.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	return CheckPropertyDetails(pkg, req.Property, s.config.BasicPackageSqftLimit), nil
}

// QuoteAddOns prices the add-on step for a package
func (s *BookingService) QuoteAddOns(ctx context.Context, req *models.QuoteAddOnsRequest) (*models.AddOnQuote, error) {
	pkg, err := s.catalogRepo.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	if IsBasicPackage(pkg) && len(req.AddOns) > 0 {
		return nil, validationError("add_ons", "Add-ons are not available for basic packages")
	}
	return PriceAddOns(pkg, req.AddOns)
}

// PrefillBookingForm seeds the booking step from the user's profile. A
// missing profile leaves only the defaults.
func (s *BookingService) PrefillBookingForm(ctx context.Context, userID string) (*models.BookingFormData, error) {
	form := &models.BookingFormData{ScheduledTime: models.DefaultServiceTime}
	if userID == "" {
		return form, nil
	}

	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return form, nil
		}
		return nil, err
	}

	form.CustomerName = profile.FullName
	if profile.Phone != nil {
		form.CustomerPhone = *profile.Phone
	}
	form.PanchayathID = profile.PanchayathID
	form.WardNumber = profile.WardNumber
	return form, nil
}

// CreateBooking validates every wizard step and stores a pending booking.
// Prices are always recomputed from the catalog.
func (s *BookingService) CreateBooking(ctx context.Context, customerID string, req *models.CreateBookingRequest) (*models.Booking, error) {
	if customerID == "" {
		return nil, fmt.Errorf("customer id is required: %w", models.ErrForbidden)
	}

	pkg, err := s.catalogRepo.GetPackage(ctx, req.PackageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, validationError("package_id", "Package %s is not available", pkg.Name)
	}

	check := CheckPropertyDetails(pkg, req.Property, s.config.BasicPackageSqftLimit)
	if !check.Valid {
		errs := &models.ValidationError{Fields: check.Errors}
		if check.UpgradeSuggested {
			errs.Add("property_sqft", "%s", check.Message)
		}
		return nil, errs
	}

	if IsBasicPackage(pkg) && len(req.AddOns) > 0 {
		return nil, validationError("add_ons", "Add-ons are not available for basic packages")
	}
	quote, err := PriceAddOns(pkg, req.AddOns)
	if err != nil {
		return nil, err
	}

	form := req.Form
	normalizeBookingForm(&form)

	var panchayath *models.Panchayath
	if form.PanchayathID != "" {
		panchayath, err = s.catalogRepo.GetPanchayath(ctx, form.PanchayathID)
		if err != nil && !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}
	if err := ValidateBookingForm(&form, panchayath, s.now()); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		CustomerID:          customerID,
		PackageID:           pkg.ID,
		CustomerName:        form.CustomerName,
		CustomerPhone:       form.CustomerPhone,
		PanchayathID:        form.PanchayathID,
		WardNumber:          form.WardNumber,
		Landmark:            form.Landmark,
		PropertySqft:        form.PropertySqft,
		Property:            req.Property,
		ScheduledDate:       form.ScheduledDate,
		ScheduledTime:       form.ScheduledTime,
		SpecialInstructions: form.SpecialInstructions,
		AddOns:              quote.AddOnIDs(),
		BasePrice:           quote.BasePrice,
		AddOnTotal:          quote.AddOnTotal,
		TotalPrice:          quote.GrandTotal,
		Status:              models.BookingStatusPending,
		RequiredStaffCount:  s.config.DefaultRequiredStaff,
	}
	if booking.RequiredStaffCount <= 0 {
		booking.RequiredStaffCount = models.DefaultRequiredStaff
	}

	created, err := s.bookingRepo.CreateBooking(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	invalidate(ctx, s.cache, s.logger, querycache.Bookings)

	created.Package = pkg
	return created, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := attachPackages(ctx, s.catalogRepo, []*models.Booking{booking}); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, filter *models.BookingFilter) ([]*models.Booking, error) {
	if filter == nil {
		filter = &models.BookingFilter{}
	}
	key := querycache.Key(querycache.Bookings, string(filter.Status), filter.PanchayathID, filter.CustomerID)

	return cachedQuery(ctx, s.cache, s.logger, key, func() ([]*models.Booking, error) {
		bookings, err := s.bookingRepo.GetBookingsByFilter(ctx, filter)
		if err != nil {
			return nil, err
		}
		if err := attachPackages(ctx, s.catalogRepo, bookings); err != nil {
			return nil, err
		}
		if bookings == nil {
			bookings = []*models.Booking{}
		}
		return bookings, nil
	})
}

// UpdateBookingStatus moves a booking along its lifecycle
func (s *BookingService) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus, updatedBy string) (*models.Booking, error) {
	current, err := s.bookingRepo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("booking %s cannot move from %s to %s: %w", id, current.Status, status, models.ErrInvalidTransition)
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, status, updatedBy)
	if err != nil {
		return nil, err
	}

	invalidate(ctx, s.cache, s.logger, querycache.Bookings, querycache.AvailableJobs, querycache.MyJobs)

	s.logger.Infof("Booking %s moved from %s to %s by %s", id, current.Status, status, updatedBy)
	return updated, nil
}
