package repository

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
)

type ProfileRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewProfileRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	r.logger.Debugf("Profile checking for: %s", userID)

	var profile models.Profile
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.TableName("profiles"),
		KeyName:   "user_id",
		KeyValue:  userID,
		KeyType:   models.StringType,
	}, &profile)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("profile", userID)
		}
		r.logger.Errorf("Failed to get profile %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// GetProfilesByUserIDs returns the profiles that exist, keyed by user id
func (r *ProfileRepository) GetProfilesByUserIDs(ctx context.Context, userIDs []string) (map[string]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.db.BatchGetItems(ctx, r.config.TableName("profiles"), "user_id", userIDs, &profiles); err != nil {
		r.logger.Errorf("Failed to batch get profiles: %v", err)
		return nil, err
	}

	byID := make(map[string]*models.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	return byID, nil
}
