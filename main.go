package main

import (
	"context"
	"errors"
	"homeserve-backend/controller"
	"homeserve-backend/dal"
	"homeserve-backend/middelware"
	"homeserve-backend/models"
	"homeserve-backend/repository"
	"homeserve-backend/services"
	"homeserve-backend/utils"
	"homeserve-backend/utils/logger"
	"homeserve-backend/utils/querycache"
	"homeserve-backend/worker"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

var config *models.Config

func Init() {
	var err error
	config, err = utils.GetConfig()
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	Init()

	appLogger := logger.NewLogger(config.LogLevel, config.LogFormat)
	appLogger.Debugf("Config loaded: %s", utils.PrintPrettyJSON(config))

	if config.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dalContainer, err := dal.NewDALContainer(config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize DAL: %v", err)
	}

	cache, err := querycache.New(config, appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to initialize query cache: %v", err)
	}

	workerConfig := worker.NewWorkerConfig(config)
	repos := repository.NewRepository(dalContainer.GetDatabaseClient(), config, appLogger)
	svc := services.NewService(repos, dalContainer, cache, appLogger, config, workerConfig.StatusFilePath)

	// Table provisioning and the available-jobs refresher
	backgroundWorker, err := worker.NewService(config, workerConfig, dalContainer.GetDatabaseClient(), svc.GetJobService(), appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create worker: %v", err)
	}
	if err := backgroundWorker.StartInBackground(); err != nil {
		appLogger.Fatalf("Failed to start worker: %v", err)
	}

	logging := middelware.NewLoggingMiddleware(appLogger)
	r := gin.New()
	r.Use(
		logging.Recovery(),
		logging.StructuredLogger(),
		middelware.NewCORSMiddleware(config).CORS(),
		middelware.NewRateLimiter(config, appLogger).Limit(),
	)

	jwtManager := middelware.NewJWTManager(config, appLogger)
	controller.NewController(svc, jwtManager, config, appLogger).RegisterRoutes(r, config.BasePath)

	srv := &http.Server{
		Addr:              net.JoinHostPort(config.AppHost, config.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Infof("%s %s listening on %s", config.AppName, config.AppVersion, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Errorf("Server forced to shutdown: %v", err)
	}
	if err := backgroundWorker.Stop(); err != nil {
		appLogger.Errorf("Failed to stop worker: %v", err)
	}
	appLogger.Info("Server exited")
}
