package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/propdesk/propdesk/config"
	"github.com/propdesk/propdesk/internal/ai"
	"github.com/propdesk/propdesk/internal/api"
	"github.com/propdesk/propdesk/internal/api/handlers"
	"github.com/propdesk/propdesk/internal/core/auth"
	"github.com/propdesk/propdesk/internal/core/contractor"
	"github.com/propdesk/propdesk/internal/core/maintenance"
	"github.com/propdesk/propdesk/internal/core/property"
	"github.com/propdesk/propdesk/internal/core/report"
	"github.com/propdesk/propdesk/internal/core/validation"
	"github.com/propdesk/propdesk/internal/core/warranty"
	"github.com/propdesk/propdesk/internal/core/workorder"
	"github.com/propdesk/propdesk/internal/scheduler"
	"github.com/propdesk/propdesk/internal/storage/postgres"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate critical configuration
	if cfg.JWT.Secret == "" {
		log.Fatalf("JWT_SECRET environment variable is required")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("connected to database")

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(); err != nil {
			logger.Fatal("migration failed", zap.Error(err))
		}
		logger.Info("schema migrated")
	}

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	propertyRepo := property.NewRepository(db)
	maintenanceRepo := maintenance.NewRepository(db)
	contractorRepo := contractor.NewRepository(db)
	workOrderRepo := workorder.NewRepository(db)
	warrantyRepo := warranty.NewRepository(db)

	// Initialize services
	authService := auth.NewService(authRepo, &cfg.JWT)
	propertyService := property.NewService(propertyRepo)
	maintenanceService := maintenance.NewService(maintenanceRepo, propertyService)
	contractorService := contractor.NewService(contractorRepo)
	workOrderService := workorder.NewService(workOrderRepo, maintenanceService, contractorService)
	warrantyService := warranty.NewService(warrantyRepo, propertyService)
	reportService := report.NewService(propertyRepo, maintenanceRepo, workOrderRepo, warrantyRepo)
	validator := validation.NewValidator()

	// AI client is optional; without an API key the insight endpoints
	// report themselves unavailable.
	var aiClient *ai.Client
	if cfg.AI.APIKey != "" {
		aiClient, err = ai.NewClient(context.Background(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			logger.Fatal("failed to create AI client", zap.Error(err))
		}
		logger.Info("AI insights enabled", zap.String("engine", aiClient.Name()))
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	companyHandler := handlers.NewCompanyHandler(authService, validator)
	propertyHandler := handlers.NewPropertyHandler(propertyService, reportService)
	maintenanceHandler := handlers.NewMaintenanceHandler(maintenanceService)
	workOrderHandler := handlers.NewWorkOrderHandler(workOrderService)
	contractorHandler := handlers.NewContractorHandler(contractorService)
	warrantyHandler := handlers.NewWarrantyHandler(warrantyService)
	dashboardHandler := handlers.NewDashboardHandler(reportService)
	insightsHandler := handlers.NewInsightsHandler(reportService, propertyService, aiClient)
	adminHandler := handlers.NewAdminHandler(authService)

	// Setup router
	router := api.NewRouter(
		authService,
		authHandler,
		companyHandler,
		propertyHandler,
		maintenanceHandler,
		workOrderHandler,
		contractorHandler,
		warrantyHandler,
		dashboardHandler,
		insightsHandler,
		adminHandler,
	)

	engine := router.Setup(cfg.Server.Mode)

	// Warranty sweep
	sched := scheduler.NewScheduler(warrantyRepo, logger)
	if cfg.Scheduler.Enabled {
		if err := sched.Start(cfg.Scheduler.WarrantySweep); err != nil {
			logger.Fatal("failed to start scheduler", zap.Error(err))
		}
	}

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down server")
		sched.Stop()
		db.Close()
		os.Exit(0)
	}()

	// Start server
	logger.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
