package repository

import (
	"context"
	"errors"
	"fmt"
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/utils/logger"
	"sort"
)

type CatalogRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewCatalogRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *CatalogRepository {
	return &CatalogRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *CatalogRepository) ListCategories(ctx context.Context) ([]*models.ServiceCategory, error) {
	var categories []*models.ServiceCategory
	if err := r.db.Scan(ctx, r.config.TableName("service_categories"), &categories); err != nil {
		r.logger.Errorf("Failed to list service categories: %v", err)
		return nil, err
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

// ListPackages returns packages with their category joined, cheapest first
func (r *CatalogRepository) ListPackages(ctx context.Context, filter *models.PackageFilter) ([]*models.Package, error) {
	r.logger.Debugf("Listing packages")

	var packages []*models.Package
	if err := r.db.Scan(ctx, r.config.TableName("packages"), &packages); err != nil {
		r.logger.Errorf("Failed to list packages: %v", err)
		return nil, err
	}

	if filter != nil {
		filtered := make([]*models.Package, 0, len(packages))
		for _, p := range packages {
			if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
				continue
			}
			if filter.ActiveOnly && !p.IsActive {
				continue
			}
			filtered = append(filtered, p)
		}
		packages = filtered
	}

	if err := r.attachCategories(ctx, packages); err != nil {
		return nil, err
	}

	sort.SliceStable(packages, func(i, j int) bool {
		if packages[i].Price != packages[j].Price {
			return packages[i].Price < packages[j].Price
		}
		return packages[i].Name < packages[j].Name
	})
	return packages, nil
}

func (r *CatalogRepository) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	if id == "" {
		return nil, errors.New("package id is required")
	}

	var pkg models.Package
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.TableName("packages"),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &pkg)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("package", id)
		}
		r.logger.Errorf("Failed to get package %s: %v", id, err)
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	if err := r.attachCategories(ctx, []*models.Package{&pkg}); err != nil {
		return nil, err
	}
	return &pkg, nil
}

// GetPackagesByIDs returns the found packages keyed by id, categories joined
func (r *CatalogRepository) GetPackagesByIDs(ctx context.Context, ids []string) (map[string]*models.Package, error) {
	var packages []*models.Package
	if err := r.db.BatchGetItems(ctx, r.config.TableName("packages"), "id", ids, &packages); err != nil {
		r.logger.Errorf("Failed to batch get packages: %v", err)
		return nil, err
	}
	if err := r.attachCategories(ctx, packages); err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Package, len(packages))
	for _, p := range packages {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *CatalogRepository) attachCategories(ctx context.Context, packages []*models.Package) error {
	if len(packages) == 0 {
		return nil
	}

	ids := make([]string, 0, len(packages))
	for _, p := range packages {
		ids = append(ids, p.CategoryID)
	}

	var categories []*models.ServiceCategory
	if err := r.db.BatchGetItems(ctx, r.config.TableName("service_categories"), "id", ids, &categories); err != nil {
		r.logger.Errorf("Failed to load package categories: %v", err)
		return err
	}

	byID := make(map[string]*models.ServiceCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	for _, p := range packages {
		p.Category = byID[p.CategoryID]
	}
	return nil
}

func (r *CatalogRepository) ListPanchayaths(ctx context.Context) ([]*models.Panchayath, error) {
	var panchayaths []*models.Panchayath
	if err := r.db.Scan(ctx, r.config.TableName("panchayaths"), &panchayaths); err != nil {
		r.logger.Errorf("Failed to list panchayaths: %v", err)
		return nil, err
	}

	sort.SliceStable(panchayaths, func(i, j int) bool {
		return panchayaths[i].Name < panchayaths[j].Name
	})
	return panchayaths, nil
}

func (r *CatalogRepository) GetPanchayath(ctx context.Context, id string) (*models.Panchayath, error) {
	if id == "" {
		return nil, errors.New("panchayath id is required")
	}

	var p models.Panchayath
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.config.TableName("panchayaths"),
		KeyName:   "id",
		KeyValue:  id,
		KeyType:   models.StringType,
	}, &p)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.NotFound("panchayath", id)
		}
		r.logger.Errorf("Failed to get panchayath %s: %v", id, err)
		return nil, fmt.Errorf("failed to get panchayath: %w", err)
	}
	return &p, nil
}

// GetPanchayathsByIDs returns the found panchayaths keyed by id
func (r *CatalogRepository) GetPanchayathsByIDs(ctx context.Context, ids []string) (map[string]*models.Panchayath, error) {
	var panchayaths []*models.Panchayath
	if err := r.db.BatchGetItems(ctx, r.config.TableName("panchayaths"), "id", ids, &panchayaths); err != nil {
		r.logger.Errorf("Failed to batch get panchayaths: %v", err)
		return nil, err
	}

	byID := make(map[string]*models.Panchayath, len(panchayaths))
	for _, p := range panchayaths {
		byID[p.ID] = p
	}
	return byID, nil
}
