package controller

import (
	"homeserve-backend/middelware"
	"homeserve-backend/models"
	"homeserve-backend/services"
	"homeserve-backend/utils/logger"
	"homeserve-backend/utils/swagger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	Catalog        *CatalogController
	Booking        *BookingController
	Staff          *StaffController
	Job            *JobController
	Infrastructure *InfrastructureController

	jwtManager *middelware.JWTManager
	config     *models.Config
	logger     logger.Logger
}

func NewController(svc services.ServiceContainerInterface, jwtManager *middelware.JWTManager, cfg *models.Config, log logger.Logger) *Controller {
	return &Controller{
		Catalog:        NewCatalogController(svc.GetCatalogService(), log),
		Booking:        NewBookingController(svc.GetBookingService(), log),
		Staff:          NewStaffController(svc.GetStaffService(), log),
		Job:            NewJobController(svc.GetJobService(), log),
		Infrastructure: NewInfrastructureController(svc.GetInfrastructureService(), log),
		jwtManager:     jwtManager,
		config:         cfg,
		logger:         log,
	}
}

// RegisterRoutes mounts every endpoint under basePath
func (c *Controller) RegisterRoutes(r *gin.Engine, basePath string) {
	v1 := r.Group(basePath)

	// Health check endpoint (no auth required)
	v1.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": c.config.AppVersion,
			"service": c.config.AppName,
		})
	})

	// Swagger UI and a document derived from the routes below
	swaggerConfig := swagger.SwaggerConfig{
		Title:         c.config.AppName + " API",
		SwaggerDocURL: "/swagger/doc.json",
	}
	r.GET("/swagger", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/index.html", swagger.ServeSwaggerUI(swaggerConfig))
	r.GET("/swagger/doc.json", swagger.ServeDoc(swagger.DocInfo{
		Title:    c.config.AppName,
		Version:  c.config.AppVersion,
		BasePath: basePath,
		PublicPrefixes: []string{
			basePath + "/health",
			basePath + "/catalog",
			basePath + "/booking/property",
			basePath + "/booking/addons",
		},
	}, r))

	auth := c.jwtManager.AuthMiddleware()
	admin := c.jwtManager.RequireRole(models.UserRoleAdmin)
	staff := c.jwtManager.RequireRole(models.UserRoleStaff)

	// Catalog - public
	catalog := v1.Group("/catalog")
	catalog.GET("/packages", c.Catalog.ListPackages)
	catalog.GET("/packages/:id", c.Catalog.GetPackage)
	catalog.GET("/categories", c.Catalog.ListCategories)
	catalog.GET("/panchayaths", c.Catalog.ListPanchayaths)
	catalog.GET("/panchayaths/:id/wards", c.Catalog.GetWards)
	catalog.GET("/addons", c.Catalog.ListAddOns)

	// Booking wizard steps
	wizard := v1.Group("/booking")
	wizard.POST("/property/validate", c.Booking.ValidateProperty)
	wizard.POST("/addons/quote", c.Booking.QuoteAddOns)
	wizard.GET("/prefill", auth, c.Booking.Prefill)

	bookings := v1.Group("/bookings", auth)
	bookings.POST("", c.jwtManager.RequireRole(models.UserRoleCustomer, models.UserRoleAdmin), c.Booking.CreateBooking)
	bookings.GET("", admin, c.Booking.ListBookings)
	bookings.GET("/:id", c.Booking.GetBooking)
	bookings.PATCH("/:id/status", admin, c.Booking.UpdateStatus)
	bookings.PUT("/:id/staff", admin, c.Staff.AssignStaff)

	// Staff administration
	staffAdmin := v1.Group("/staff", auth, admin)
	staffAdmin.GET("", c.Staff.ListStaff)
	staffAdmin.GET("/panchayath/:id", c.Staff.StaffByPanchayath)
	staffAdmin.PUT("/:id/details", c.Staff.UpdateStaffDetails)

	v1.PATCH("/assignments/:id/status", auth, c.jwtManager.RequireRole(models.UserRoleStaff, models.UserRoleAdmin), c.Staff.UpdateAssignmentStatus)

	// Staff job views
	jobs := v1.Group("/jobs", auth, staff)
	jobs.GET("/mine", c.Job.MyJobs)
	jobs.GET("/available", c.Job.AvailableJobs)
	jobs.POST("/:bookingId/accept", c.Job.AcceptJob)
	v1.GET("/earnings/mine", auth, staff, c.Job.MyEarnings)

	infra := v1.Group("/infrastructure", auth, admin)
	infra.GET("/worker/status", c.Infrastructure.GetWorkerStatus)
	infra.GET("/tables", c.Infrastructure.CheckTables)
}
