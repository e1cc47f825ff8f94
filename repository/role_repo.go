package repository

import (
	"context"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
)

// UserRoleRepository reads the user_roles table maintained by the auth provider
type UserRoleRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewUserRoleRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *UserRoleRepository {
	return &UserRoleRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

// ListUserIDsByRole returns the ids of users holding role, oldest grant first
func (r *UserRoleRepository) ListUserIDsByRole(ctx context.Context, role models.UserRole) ([]string, error) {
	var rows []*models.RoleAssignment
	err := r.db.QueryByIndex(ctx, models.IndexQuery{
		TableName:   r.config.TableName("user_roles"),
		IndexName:   "role-index",
		KeyName:     "role",
		KeyValue:    string(role),
		ScanForward: true,
	}, &rows)
	if err != nil {
		r.logger.Errorf("Failed to list users with role %s: %v", role, err)
		return nil, fmt.Errorf("failed to list %s users: %w", role, err)
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	return ids, nil
}
