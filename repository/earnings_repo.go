package repository

import (
	"context"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"sort"
)

type EarningsRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewEarningsRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *EarningsRepository {
	return &EarningsRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// ListByStaff returns a staff user's earnings, newest first
func (r *EarningsRepository) ListByStaff(ctx context.Context, staffUserID string) ([]*models.StaffEarning, error) {
	var rows []*models.StaffEarning
	err := r.db.QueryByIndex(ctx, models.IndexQuery{
		TableName:   r.config.TableName("staff_earnings"),
		IndexName:   "staff_user_id-index",
		KeyName:     "staff_user_id",
		KeyValue:    staffUserID,
		ScanForward: false,
	}, &rows)
	if err != nil {
		r.logger.Errorf("Failed to get earnings for %s: %v", staffUserID, err)
		return nil, fmt.Errorf("failed to get earnings: %w", err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}
