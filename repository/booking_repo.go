package repository

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils"
	"homeserve-backend/utils/logger"
	"sort"
	"time"
)

type BookingRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewBookingRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *BookingRepository {
	return &BookingRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *BookingRepository) table() string {
	return r.config.TableName("bookings")
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	r.logger.Infof("Creating booking for customer: %s", booking.CustomerID)

	now := time.Now().UTC()
	booking.ID = utils.GenerateUUID()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.AddOns == nil {
		booking.AddOns = []string{}
	}

	if err := r.db.PutItem(ctx, r.table(), booking); err != nil {
		r.logger.Errorf("Failed to create booking: %v", err)
		return nil, err
	}

	r.logger.Infof("Booking created successfully: %s", booking.ID)
	return booking, nil
}

func (r *BookingRepository) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if id == "" {
		return nil, errors.New("booking id is required")
	}

	var booking models.Booking
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &booking)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("booking", id)
		}
		r.logger.Errorf("Failed to get booking %s: %v", id, err)
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

// GetBookingsByIDs returns the bookings that exist, keyed by id
func (r *BookingRepository) GetBookingsByIDs(ctx context.Context, ids []string) (map[string]*models.Booking, error) {
	var bookings []*models.Booking
	if err := r.db.BatchGetItems(ctx, r.table(), "id", ids, &bookings); err != nil {
		r.logger.Errorf("Failed to batch get bookings: %v", err)
		return nil, err
	}

	byID := make(map[string]*models.Booking, len(bookings))
	for _, b := range bookings {
		byID[b.ID] = b
	}
	return byID, nil
}

// GetBookingsByFilter picks the narrowest index for the filter and applies
// the remaining conditions in memory. Newest bookings come first.
func (r *BookingRepository) GetBookingsByFilter(ctx context.Context, filter *models.BookingFilter) ([]*models.Booking, error) {
	r.logger.Infof("Getting bookings with filter")

	if filter == nil {
		filter = &models.BookingFilter{}
	}

	var bookings []*models.Booking
	var err error

	if filter.PanchayathID != "" {
		err = r.db.QueryByIndex(ctx, models.IndexQuery{
			TableName: r.table(),
			IndexName: "panchayath_id-index",
			KeyName:   "panchayath_id",
			KeyValue:  filter.PanchayathID,
		}, &bookings)
	} else if filter.CustomerID != "" {
		err = r.db.QueryByIndex(ctx, models.IndexQuery{
			TableName: r.table(),
			IndexName: "customer_id-index",
			KeyName:   "customer_id",
			KeyValue:  filter.CustomerID,
		}, &bookings)
	} else if filter.Status != "" {
		err = r.db.QueryByIndex(ctx, models.IndexQuery{
			TableName: r.table(),
			IndexName: "status-index",
			KeyName:   "status",
			KeyValue:  string(filter.Status),
		}, &bookings)
	} else {
		// Scan all bookings (use with caution in production)
		err = r.db.Scan(ctx, r.table(), &bookings)
	}

	if err != nil {
		r.logger.Errorf("Failed to get bookings: %v", err)
		return nil, err
	}

	filtered := r.applyAdditionalFilters(bookings, filter)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	r.logger.Infof("Found %d bookings", len(filtered))
	return filtered, nil
}

// ListByStatusInPanchayaths returns bookings with status in any of the
// panchayaths, ordered by scheduled date ascending
func (r *BookingRepository) ListByStatusInPanchayaths(ctx context.Context, status models.BookingStatus, panchayathIDs []string) ([]*models.Booking, error) {
	seen := make(map[string]bool, len(panchayathIDs))
	var out []*models.Booking

	for _, pid := range panchayathIDs {
		if pid == "" || seen[pid] {
			continue
		}
		seen[pid] = true

		var bookings []*models.Booking
		err := r.db.QueryByIndex(ctx, models.IndexQuery{
			TableName:   r.table(),
			IndexName:   "panchayath_id-index",
			KeyName:     "panchayath_id",
			KeyValue:    pid,
			ScanForward: true,
		}, &bookings)
		if err != nil {
			r.logger.Errorf("Failed to get bookings for panchayath %s: %v", pid, err)
			return nil, fmt.Errorf("failed to get bookings for panchayath: %w", err)
		}

		for _, b := range bookings {
			if b.Status == status {
				out = append(out, b)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ScheduledDate != out[j].ScheduledDate {
			return out[i].ScheduledDate < out[j].ScheduledDate
		}
		return out[i].ScheduledTime < out[j].ScheduledTime
	})
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, updatedBy string) (*models.Booking, error) {
	r.logger.Infof("Updating booking %s status to %s", id, status)

	var updated models.Booking
	err := r.db.UpdateItem(ctx, r.table(), "id", id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
		"updated_by": updatedBy,
	}, &updated)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("booking", id)
		}
		r.logger.Errorf("Failed to update booking status: %v", err)
		return nil, err
	}
	return &updated, nil
}

func (r *BookingRepository) applyAdditionalFilters(bookings []*models.Booking, filter *models.BookingFilter) []*models.Booking {
	filtered := make([]*models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.PanchayathID != "" && b.PanchayathID != filter.PanchayathID {
			continue
		}
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}
