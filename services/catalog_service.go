package services

import (
	"context"
	"homeserve-backend/models"
	"homeserve-backend/repository"
	"homeserve-backend/utils/logger"
)

// CatalogService serves packages, categories, panchayaths and add-ons
type CatalogService struct {
	catalogRepo repository.CatalogRepositoryInterface
	logger      logger.Logger
}

func NewCatalogService(catalogRepo repository.CatalogRepositoryInterface, logger logger.Logger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

func (s *CatalogService) ListPackages(ctx context.Context, filter *models.PackageFilter) ([]*models.Package, error) {
	return s.catalogRepo.ListPackages(ctx, filter)
}

func (s *CatalogService) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	if id == "" {
		return nil, validationError("package_id", "Package is required")
	}
	return s.catalogRepo.GetPackage(ctx, id)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]*models.ServiceCategory, error) {
	return s.catalogRepo.ListCategories(ctx)
}

func (s *CatalogService) ListPanchayaths(ctx context.Context) ([]*models.Panchayath, error) {
	return s.catalogRepo.ListPanchayaths(ctx)
}

// GetWards returns the ward numbers of a panchayath, 1..ward_count
func (s *CatalogService) GetWards(ctx context.Context, panchayathID string) ([]int, error) {
	if panchayathID == "" {
		return []int{}, nil
	}

	p, err := s.catalogRepo.GetPanchayath(ctx, panchayathID)
	if err != nil {
		return nil, err
	}
	return p.Wards(), nil
}

// ListAddOns returns the fixed add-on catalog
func (s *CatalogService) ListAddOns() []models.AddOn {
	out := make([]models.AddOn, len(models.AddOnCatalog))
	copy(out, models.AddOnCatalog)
	return out
}

func validationError(field, format string, args ...interface{}) error {
	errs := &models.ValidationError{}
	errs.Add(field, format, args...)
	return errs
}
