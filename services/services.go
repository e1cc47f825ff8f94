package services

import (
	"homeserve-backend/dal"
	"homeserve-backend/models"
	"homeserve-backend/repository"
	"homeserve-backend/utils/logger"
	"homeserve-backend/utils/querycache"
)

// Service implements ServiceContainerInterface
type Service struct {
	catalogService        CatalogServiceInterface
	bookingService        BookingServiceInterface
	staffService          StaffServiceInterface
	jobService            JobServiceInterface
	infrastructureService InfrastructureServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(
	repoContainer repository.RepositoryContainerInterface,
	dalContainer dal.DALContainerInterface,
	cache querycache.Cache,
	logger logger.Logger,
	config *models.Config,
	statusFilePath string,
) ServiceContainerInterface {
	return &Service{
		catalogService: NewCatalogService(repoContainer.GetCatalogRepository(), logger),
		bookingService: NewBookingService(
			repoContainer.GetCatalogRepository(),
			repoContainer.GetBookingRepository(),
			repoContainer.GetProfileRepository(),
			cache, logger, config,
		),
		staffService:          NewStaffService(repoContainer, cache, logger),
		jobService:            NewJobService(repoContainer, cache, logger, config),
		infrastructureService: NewInfrastructureService(dalContainer.GetDatabaseClient(), logger, config, statusFilePath),
	}
}

// GetCatalogService returns the catalog service interface
func (s *Service) GetCatalogService() CatalogServiceInterface {
	return s.catalogService
}

// GetBookingService returns the booking service interface
func (s *Service) GetBookingService() BookingServiceInterface {
	return s.bookingService
}

// GetStaffService returns the staff service interface
func (s *Service) GetStaffService() StaffServiceInterface {
	return s.staffService
}

// GetJobService returns the job service interface
func (s *Service) GetJobService() JobServiceInterface {
	return s.jobService
}

// GetInfrastructureService returns the infrastructure service interface
func (s *Service) GetInfrastructureService() InfrastructureServiceInterface {
	return s.infrastructureService
}
