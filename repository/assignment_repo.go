package repository

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils"
	"homeserve-backend/utils/logger"
	"time"
)

// AssignmentRepository stores booking_staff_assignments
type AssignmentRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewAssignmentRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *AssignmentRepository {
	return &AssignmentRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *AssignmentRepository) table() string {
	return r.config.TableName("booking_staff_assignments")
}

func (r *AssignmentRepository) CreateAssignment(ctx context.Context, a *models.BookingStaffAssignment) (*models.BookingStaffAssignment, error) {
	r.logger.Infof("Assigning staff %s to booking %s (%s)", a.StaffUserID, a.BookingID, a.Status)

	a.ID = utils.GenerateUUID()
	a.AssignedAt = time.Now().UTC()

	if err := r.db.PutItem(ctx, r.table(), a); err != nil {
		r.logger.Errorf("Failed to create assignment: %v", err)
		return nil, err
	}
	return a, nil
}

// ErrSlotTaken reports that another accepted assignment already holds the slot
var ErrSlotTaken = errors.New("accept slot already taken")

// AcceptSlotID names the assignment row for the n-th self-accepted seat on a booking
func AcceptSlotID(bookingID string, slot int) string {
	return fmt.Sprintf("%s#accept-%d", bookingID, slot)
}

// ClaimAcceptSlot stores an accepted assignment under a per-booking slot id.
// The put is conditional so two staff racing for the same seat cannot both win;
// a slot whose previous holder is no longer accepted can be reused.
func (r *AssignmentRepository) ClaimAcceptSlot(ctx context.Context, a *models.BookingStaffAssignment, slot int) (*models.BookingStaffAssignment, error) {
	a.ID = AcceptSlotID(a.BookingID, slot)
	a.Status = models.AssignmentStatusAccepted
	a.AssignedAt = time.Now().UTC()

	err := r.db.PutItemWithCondition(ctx, r.table(), a, models.WriteCondition{
		Expression: "attribute_not_exists(#id) OR #status <> :accepted",
		Names:      map[string]string{"#id": "id", "#status": "status"},
		Values:     map[string]interface{}{":accepted": models.AssignmentStatusAccepted},
	})
	if err != nil {
		if dal.IsConditionFailed(err) {
			return nil, fmt.Errorf("booking %s slot %d: %w", a.BookingID, slot, ErrSlotTaken)
		}
		r.logger.Errorf("Failed to claim slot %d on booking %s: %v", slot, a.BookingID, err)
		return nil, err
	}
	return a, nil
}

func (r *AssignmentRepository) GetAssignment(ctx context.Context, id string) (*models.BookingStaffAssignment, error) {
	if id == "" {
		return nil, errors.New("assignment id is required")
	}

	var a models.BookingStaffAssignment
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &a)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("assignment", id)
		}
		r.logger.Errorf("Failed to get assignment %s: %v", id, err)
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) ListByBooking(ctx context.Context, bookingID string) ([]*models.BookingStaffAssignment, error) {
	var rows []*models.BookingStaffAssignment
	err := r.db.QueryByIndex(ctx, models.IndexQuery{
		TableName:   r.table(),
		IndexName:   "booking_id-index",
		KeyName:     "booking_id",
		KeyValue:    bookingID,
		ScanForward: true,
	}, &rows)
	if err != nil {
		r.logger.Errorf("Failed to get assignments for booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("failed to get assignments for booking: %w", err)
	}
	return rows, nil
}

// ListByBookings returns the assignments of each booking, keyed by booking id
func (r *AssignmentRepository) ListByBookings(ctx context.Context, bookingIDs []string) (map[string][]*models.BookingStaffAssignment, error) {
	byBooking := make(map[string][]*models.BookingStaffAssignment, len(bookingIDs))
	for _, id := range bookingIDs {
		if _, done := byBooking[id]; done || id == "" {
			continue
		}
		rows, err := r.ListByBooking(ctx, id)
		if err != nil {
			return nil, err
		}
		byBooking[id] = rows
	}
	return byBooking, nil
}

// ListByStaff returns a staff user's assignments, oldest first
func (r *AssignmentRepository) ListByStaff(ctx context.Context, staffUserID string) ([]*models.BookingStaffAssignment, error) {
	var rows []*models.BookingStaffAssignment
	err := r.db.QueryByIndex(ctx, models.IndexQuery{
		TableName:   r.table(),
		IndexName:   "staff_user_id-index",
		KeyName:     "staff_user_id",
		KeyValue:    staffUserID,
		ScanForward: true,
	}, &rows)
	if err != nil {
		r.logger.Errorf("Failed to get assignments for staff %s: %v", staffUserID, err)
		return nil, fmt.Errorf("failed to get assignments for staff: %w", err)
	}
	return rows, nil
}

// DeleteByBooking removes every assignment of a booking
func (r *AssignmentRepository) DeleteByBooking(ctx context.Context, bookingID string) error {
	rows, err := r.ListByBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := r.db.DeleteItem(ctx, r.table(), "id", row.ID); err != nil {
			r.logger.Errorf("Failed to delete assignment %s: %v", row.ID, err)
			return fmt.Errorf("failed to clear assignments for booking %s: %w", bookingID, err)
		}
	}

	r.logger.Infof("Cleared %d assignments for booking %s", len(rows), bookingID)
	return nil
}

func (r *AssignmentRepository) UpdateStatus(ctx context.Context, id string, status models.AssignmentStatus) (*models.BookingStaffAssignment, error) {
	r.logger.Infof("Updating assignment %s status to %s", id, status)

	var updated models.BookingStaffAssignment
	err := r.db.UpdateItem(ctx, r.table(), "id", id, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}, &updated)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("assignment", id)
		}
		r.logger.Errorf("Failed to update assignment status: %v", err)
		return nil, err
	}
	return &updated, nil
}
