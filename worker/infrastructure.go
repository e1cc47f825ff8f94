package worker

import (
	"context"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/infrastructure"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"strings"
	"time"
)

const (
	tableCreated = "CREATED"
	tableExists  = "EXISTS"
	tableSkipped = "SKIPPED"
	tableFailed  = "FAILED"
)

// Provisioner creates any required DynamoDB table that does not exist yet.
// Existing tables are left untouched so runs are idempotent.
type Provisioner struct {
	dbClient     dal.DatabaseClientInterface
	config       *models.Config
	workerConfig *models.WorkerConfig
	logger       logger.Logger
}

// NewProvisioner creates a table provisioner
func NewProvisioner(dbClient dal.DatabaseClientInterface, cfg *models.Config, workerConfig *models.WorkerConfig, log logger.Logger) *Provisioner {
	return &Provisioner{
		dbClient:     dbClient,
		config:       cfg,
		workerConfig: workerConfig,
		logger:       log,
	}
}

// Execute makes one pass over the required tables, recording each outcome.
// It returns an error naming every table that could not be made ready.
func (p *Provisioner) Execute(ctx context.Context, statusManager *StatusManager) error {
	if err := statusManager.BeginProvisioning(p.workerConfig.Environment); err != nil {
		p.logger.Warnf("Failed to record provisioning start: %v", err)
	}

	var failed []string
	for _, base := range p.workerConfig.RequiredTables {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := p.config.TableName(base)
		outcome, err := p.ensureTable(ctx, base, name)
		if err != nil {
			p.logger.Errorf("Failed to provision table %s: %v", name, err)
			failed = append(failed, name)
		}

		if recErr := statusManager.RecordTable(models.TableStatus{Name: name, Status: outcome, CheckedAt: time.Now()}); recErr != nil {
			p.logger.Warnf("Failed to record status of table %s: %v", name, recErr)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to provision tables: %s", strings.Join(failed, ", "))
	}
	return nil
}

func (p *Provisioner) ensureTable(ctx context.Context, base, name string) (string, error) {
	exists, err := p.dbClient.TableExists(ctx, name)
	if err != nil {
		return tableFailed, err
	}
	if exists {
		p.logger.Debugf("Table %s already exists, skipping creation", name)
		return tableExists, nil
	}

	input, err := infrastructure.GetTable(base, name)
	if err != nil {
		return tableFailed, err
	}

	if p.workerConfig.DryRun {
		p.logger.Infof("Dry run: would create table %s with indexes %v", name, infrastructure.IndexNames(base))
		return tableSkipped, nil
	}

	if err := p.dbClient.CreateTable(ctx, input); err != nil {
		// another instance got there first
		if dal.IsResourceInUse(err) {
			return tableExists, nil
		}
		return tableFailed, err
	}

	p.logger.Infof("Created table %s with indexes %v", name, infrastructure.IndexNames(base))
	return tableCreated, nil
}
