package repository

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"time"
)

// StaffRepository covers staff_details and staff_panchayath_assignments
type StaffRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewStaffRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *StaffRepository {
	return &StaffRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// GetDetailsByUserIDs returns the details rows that exist, keyed by user id
func (r *StaffRepository) GetDetailsByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.StaffDetails, error) {
	var details []*models.StaffDetails
	if err := r.db.BatchGetItems(ctx, r.config.TableName("staff_details"), "user_id", userIDs, &details); err != nil {
		r.logger.Errorf("Failed to batch get staff details: %v", err)
		return nil, err
	}

	byID := make(map[string]*models.StaffDetails, len(details))
	for _, d := range details {
		byID[d.UserID] = d
	}
	return byID, nil
}

// UpsertDetails writes the details row, creating it when missing
func (r *StaffRepository) UpsertDetails(ctx context.Context, details *models.StaffDetails) (*models.StaffDetails, error) {
	if details.UserID == "" {
		return nil, errors.New("staff user id is required")
	}

	r.logger.Infof("Updating staff details: %s", details.UserID)

	details.UpdatedAt = time.Now().UTC()
	if details.Skills == nil {
		details.Skills = []string{}
	}

	if err := r.db.PutItem(ctx, r.config.TableName("staff_details"), details); err != nil {
		r.logger.Errorf("Failed to update staff details: %v", err)
		return nil, err
	}
	return details, nil
}

// ListPanchayathAssignmentsByStaff returns the panchayath coverage of each
// staff user, keyed by staff id
func (r *StaffRepository) ListPanchayathAssignmentsByStaff(ctx context.Context, staffUserIDs []string) (map[string][]*models.StaffPanchayathAssignment, error) {
	byStaff := make(map[string][]*models.StaffPanchayathAssignment, len(staffUserIDs))

	for _, id := range staffUserIDs {
		if _, done := byStaff[id]; done || id == "" {
			continue
		}

		var rows []*models.StaffPanchayathAssignment
		err := r.db.QueryByIndex(ctx, models.IndexQuery{
			TableName:   r.config.TableName("staff_panchayath_assignments"),
			IndexName:   "staff_user_id-index",
			KeyName:     "staff_user_id",
			KeyValue:    id,
			ScanForward: true,
		}, &rows)
		if err != nil {
			r.logger.Errorf("Failed to get panchayath assignments for %s: %v", id, err)
			return nil, fmt.Errorf("failed to get panchayath assignments: %w", err)
		}
		byStaff[id] = rows
	}

	return byStaff, nil
}

// ListPanchayathAssignmentsByPanchayath returns every staff assignment in a panchayath
func (r *StaffRepository) ListPanchayathAssignmentsByPanchayath(ctx context.Context, panchayathID string) ([]*models.StaffPanchayathAssignment, error) {
	var rows []*models.StaffPanchayathAssignment
	err := r.db.QueryByIndex(ctx, models.IndexQuery{
		TableName:   r.config.TableName("staff_panchayath_assignments"),
		IndexName:   "panchayath_id-index",
		KeyName:     "panchayath_id",
		KeyValue:    panchayathID,
		ScanForward: true,
	}, &rows)
	if err != nil {
		r.logger.Errorf("Failed to get staff for panchayath %s: %v", panchayathID, err)
		return nil, fmt.Errorf("failed to get staff for panchayath: %w", err)
	}
	return rows, nil
}
