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

	gocache "github.com/patrickmn/go-cache"
)

const defaultWatchWindow = 5 * time.Minute

// JobService serves the staff-facing job views and job acceptance
type JobService struct {
	assignmentRepo repository.AssignmentRepositoryInterface
	bookingRepo    repository.BookingRepositoryInterface
	catalogRepo    repository.CatalogRepositoryInterface
	staffRepo      repository.StaffRepositoryInterface
	earningsRepo   repository.EarningsRepositoryInterface
	cache          querycache.Cache
	logger         logger.Logger
	config         *models.Config

	// staff user id -> last time the available-jobs view was requested
	watchers *gocache.Cache
}

func NewJobService(repos repository.RepositoryContainerInterface, cache querycache.Cache, logger logger.Logger, config *models.Config) *JobService {
	window := config.StaffWatchWindow
	if window <= 0 {
		window = defaultWatchWindow
	}

	return &JobService{
		assignmentRepo: repos.GetAssignmentRepository(),
		bookingRepo:    repos.GetBookingRepository(),
		catalogRepo:    repos.GetCatalogRepository(),
		staffRepo:      repos.GetStaffRepository(),
		earningsRepo:   repos.GetEarningsRepository(),
		cache:          cache,
		logger:         logger,
		config:         config,
		watchers:       gocache.New(window, 2*window),
	}
}

// MyJobs returns the caller's assignments joined with their bookings
func (s *JobService) MyJobs(ctx context.Context, userID string) ([]*models.MyJob, error) {
	if userID == "" {
		return []*models.MyJob{}, nil
	}

	return cachedQuery(ctx, s.cache, s.logger, querycache.Key(querycache.MyJobs, userID), func() ([]*models.MyJob, error) {
		assignments, err := s.assignmentRepo.ListByStaff(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(assignments) == 0 {
			return []*models.MyJob{}, nil
		}

		ids := make([]string, 0, len(assignments))
		for _, a := range assignments {
			ids = append(ids, a.BookingID)
		}
		bookings, err := s.bookingRepo.GetBookingsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}

		joined := make([]*models.Booking, 0, len(bookings))
		for _, b := range bookings {
			joined = append(joined, b)
		}
		if err := attachPackages(ctx, s.catalogRepo, joined); err != nil {
			return nil, err
		}

		jobs := make([]*models.MyJob, 0, len(assignments))
		for _, a := range assignments {
			jobs = append(jobs, &models.MyJob{
				ID:         a.ID,
				BookingID:  a.BookingID,
				Status:     a.Status,
				AssignedAt: a.AssignedAt,
				Booking:    bookings[a.BookingID],
			})
		}
		return jobs, nil
	})
}

// AvailableJobs lists confirmed bookings in the caller's panchayaths that
// still need staff and that the caller has not been assigned to
func (s *JobService) AvailableJobs(ctx context.Context, userID string) ([]*models.AvailableJob, error) {
	if userID == "" {
		return []*models.AvailableJob{}, nil
	}
	s.watchers.SetDefault(userID, time.Now())

	return cachedQuery(ctx, s.cache, s.logger, querycache.Key(querycache.AvailableJobs, userID), func() ([]*models.AvailableJob, error) {
		return s.computeAvailableJobs(ctx, userID)
	})
}

// RefreshAvailableJobs recomputes the caller's available jobs and replaces
// the cached view. A view computed while a write invalidated the cache is
// dropped so the stale result cannot overwrite the invalidation.
func (s *JobService) RefreshAvailableJobs(ctx context.Context, userID string) error {
	epoch := invalidations.Load()
	jobs, err := s.computeAvailableJobs(ctx, userID)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return nil
	}
	key := querycache.Key(querycache.AvailableJobs, userID)
	if invalidations.Load() != epoch {
		s.logger.Debugf("Available jobs for %s changed during refresh, leaving %s for the next read", userID, key)
		return nil
	}
	return s.cache.Set(ctx, key, jobs)
}

// WatchedStaff returns the staff users whose available-jobs view was
// requested within the watch window
func (s *JobService) WatchedStaff() []string {
	items := s.watchers.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids
}

func (s *JobService) computeAvailableJobs(ctx context.Context, userID string) ([]*models.AvailableJob, error) {
	coverage, err := s.staffRepo.ListPanchayathAssignmentsByStaff(ctx, []string{userID})
	if err != nil {
		return nil, err
	}

	var panchayathIDs []string
	for _, row := range coverage[userID] {
		panchayathIDs = append(panchayathIDs, row.PanchayathID)
	}
	if len(panchayathIDs) == 0 {
		return []*models.AvailableJob{}, nil
	}

	bookings, err := s.bookingRepo.ListByStatusInPanchayaths(ctx, models.BookingStatusConfirmed, panchayathIDs)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return []*models.AvailableJob{}, nil
	}

	mine, err := s.assignmentRepo.ListByStaff(ctx, userID)
	if err != nil {
		return nil, err
	}
	applied := make(map[string]bool, len(mine))
	for _, a := range mine {
		applied[a.BookingID] = true
	}

	candidates := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !applied[b.ID] {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		return []*models.AvailableJob{}, nil
	}

	ids := make([]string, 0, len(candidates))
	for _, b := range candidates {
		ids = append(ids, b.ID)
	}
	byBooking, err := s.assignmentRepo.ListByBookings(ctx, ids)
	if err != nil {
		return nil, err
	}

	open := make([]*models.Booking, 0, len(candidates))
	counts := make(map[string]int, len(candidates))
	for _, b := range candidates {
		accepted := countAccepted(byBooking[b.ID])
		if accepted < b.RequiredStaff(s.config.DefaultRequiredStaff) {
			open = append(open, b)
			counts[b.ID] = accepted
		}
	}

	if err := attachPackages(ctx, s.catalogRepo, open); err != nil {
		return nil, err
	}

	jobs := make([]*models.AvailableJob, 0, len(open))
	for _, b := range open {
		jobs = append(jobs, &models.AvailableJob{Booking: *b, AcceptedCount: counts[b.ID]})
	}
	return jobs, nil
}

// AcceptJob records the caller's acceptance of an open job
func (s *JobService) AcceptJob(ctx context.Context, bookingID, staffUserID string) (*models.BookingStaffAssignment, error) {
	if staffUserID == "" {
		return nil, fmt.Errorf("staff user id is required: %w", models.ErrForbidden)
	}
	if bookingID == "" {
		return nil, validationError("booking_id", "Booking is required")
	}

	booking, err := s.bookingRepo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s, not open for staff: %w", bookingID, booking.Status, models.ErrInvalidTransition)
	}

	assignments, err := s.assignmentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	for _, a := range assignments {
		if a.StaffUserID == staffUserID {
			return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrAlreadyApplied)
		}
	}
	required := booking.RequiredStaff(s.config.DefaultRequiredStaff)
	if countAccepted(assignments) >= required {
		return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrJobFull)
	}

	// each self-accept claims one of the booking's seats with a conditional
	// write, so concurrent accepters cannot push it past required
	held := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		if a.Status == models.AssignmentStatusAccepted {
			held[a.ID] = true
		}
	}
	var created *models.BookingStaffAssignment
	for slot := 1; slot <= required && created == nil; slot++ {
		if held[repository.AcceptSlotID(bookingID, slot)] {
			continue
		}
		created, err = s.assignmentRepo.ClaimAcceptSlot(ctx, &models.BookingStaffAssignment{
			BookingID:   bookingID,
			StaffUserID: staffUserID,
		}, slot)
		if errors.Is(err, repository.ErrSlotTaken) {
			s.logger.Debugf("Slot %d on booking %s taken concurrently", slot, bookingID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to accept job: %w", err)
		}
	}
	if created == nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, models.ErrJobFull)
	}

	invalidate(ctx, s.cache, s.logger, querycache.AvailableJobs, querycache.MyJobs, querycache.Bookings)

	s.logger.Infof("Staff %s accepted booking %s", staffUserID, bookingID)
	return created, nil
}

// MyEarnings returns the caller's earnings, newest first
func (s *JobService) MyEarnings(ctx context.Context, userID string) ([]*models.StaffEarning, error) {
	if userID == "" {
		return []*models.StaffEarning{}, nil
	}

	return cachedQuery(ctx, s.cache, s.logger, querycache.Key(querycache.MyEarnings, userID), func() ([]*models.StaffEarning, error) {
		earnings, err := s.earningsRepo.ListByStaff(ctx, userID)
		if err != nil {
			return nil, err
		}
		if earnings == nil {
			earnings = []*models.StaffEarning{}
		}
		return earnings, nil
	})
}

func countAccepted(assignments []*models.BookingStaffAssignment) int {
	n := 0
	for _, a := range assignments {
		if a.Status == models.AssignmentStatusAccepted {
			n++
		}
	}
	return n
}
