// File: matrimonial/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matrimonial/config"
	"matrimonial/cron"
	"matrimonial/database"
	profileRepoPkg "matrimonial/database/repository/profile"
	userRepoPkg "matrimonial/database/repository/user"
	"matrimonial/handlers"
	"matrimonial/middleware"
	"matrimonial/routes"
	"matrimonial/services/countries"
	"matrimonial/services/preview"
	"matrimonial/services/profile"
	"matrimonial/services/session"
	"matrimonial/services/storage"
	"matrimonial/services/wizard"
	"matrimonial/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()

	// Staged photo previews.
	var previews preview.Store
	switch config.AppConfig.PreviewStore {
	case "redis":
		utils.InitPreviewCache()
		previews = preview.NewRedisStore(utils.GetPreviewCacheClient(), config.AppConfig.PreviewTTL)
	default:
		previews = preview.NewMemoryStore()
	}

	// Image storage is optional; without it profiles save but photos are not uploaded.
	var images storage.ImageStorage
	cloudinaryStorage, err := storage.NewCloudinaryStorage(config.AppConfig.CloudinaryURL, logger)
	switch {
	case err == nil:
		images = cloudinaryStorage
	case errors.Is(err, storage.ErrNotConfigured):
		logger.Warn("main: CLOUDINARY_URL not set, photo uploads are disabled")
	default:
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage: %v", err)
	}

	// repositories.
	db := database.DB()
	userRepo := userRepoPkg.NewMongoUserRepo(db, logger)
	profileRepo := profileRepoPkg.NewMongoProfileRepo(db, logger)

	// services.
	sessionLoader := session.NewLoader(userRepo, profileRepo, utils.GetCacheClient(), utils.SessionCacheTTL, logger)
	profileService := profile.NewService(profileRepo, userRepo, images, config.AppConfig.CloudinaryFolder, logger)
	registry := wizard.NewRegistry(previews, config.AppConfig.WizardSessionIdleTTL, logger)
	countryLookup := countries.New(config.AppConfig.HomeCountry)

	openSession := func(ctx context.Context, userID string) (wizard.SessionContext, error) {
		sess, err := sessionLoader.Open(ctx, userID)
		if err != nil {
			return nil, err
		}
		return sess, nil
	}

	// background jobs.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	janitorDone := cron.StartSessionJanitor(bgCtx, registry, config.AppConfig.WizardSweepInterval, logger)
	utils.StartHealthMonitor(bgCtx, 30*time.Second, utils.RedisClients(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(handlers.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	handlerBundle := handlers.NewHandlerBundle(
		sessionLoader,
		handlers.NewWizardHandler(registry, profileService, openSession),
		handlers.NewPreviewHandler(previews),
		handlers.NewCountryHandler(countryLookup),
	)
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}

	stopBackground()
	<-janitorDone
	if err := registry.CloseAll(ctx); err != nil {
		logger.Warn("main: failed to release wizard sessions", zap.Error(err))
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect from MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
