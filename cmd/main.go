package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"menucraft/internal/caching"
	"menucraft/internal/config"
	"menucraft/internal/events"
	"menucraft/internal/handlers"
	"menucraft/internal/jobs"
	"menucraft/internal/jobs/background"
	"menucraft/internal/middleware"
	"menucraft/internal/repositories"
	"menucraft/internal/services"
	"menucraft/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Server.JWTSecret == "" {
		cfg.Server.JWTSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	// Database
	pool, err := database.NewPool(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(cfg.Database.MigrationsDir, cfg.Database.URL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// MinIO
	minioSvc, err := services.NewMinioService(cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.UseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO service: %v", err)
	}

	// Redis cache
	cacheSvc := caching.NewRedisCacheService(cfg.Queuing.RedisAddr, cfg.Queuing.RedisPassword, cfg.Queuing.RedisDB)

	// Repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	foodItemRepo := repositories.NewFoodItemRepo(pool)
	menuRepo := repositories.NewMenuRepo(pool)
	assignmentRepo := repositories.NewMenuAssignmentRepo(pool)
	addOnGroupRepo := repositories.NewAddOnGroupRepo(pool)
	addOnRepo := repositories.NewAddOnRepo(pool)
	variationGroupRepo := repositories.NewVariationGroupRepo(pool)
	variationRepo := repositories.NewVariationRepo(pool)
	buffetRepo := repositories.NewBuffetRepo(pool)
	comboMealRepo := repositories.NewComboMealRepo(pool)
	imageRepo := repositories.NewFoodItemImageRepo(pool)
	translationRepo := repositories.NewTranslationRepo(pool)

	recorder := events.NewLogRecorder()

	// Task queue
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Queuing.RedisAddr,
		Password: cfg.Queuing.RedisPassword,
		DB:       cfg.Queuing.RedisDB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()
	enqueuer := jobs.NewEnqueuer(asynqClient)

	// Services
	translationClient := services.NewHTTPTranslationClient(cfg.Translation.Endpoint, cfg.Translation.APIKey)
	translationSvc := services.NewTranslationService(translationRepo, categoryRepo, foodItemRepo,
		addOnGroupRepo, addOnRepo, variationGroupRepo, variationRepo,
		translationClient, recorder, cfg.Translation.SourceLocale, cfg.Translation.TargetLocales)
	categorySvc := services.NewCategoryService(categoryRepo, foodItemRepo, cacheSvc, enqueuer, recorder)
	foodItemSvc := services.NewFoodItemService(foodItemRepo, categoryRepo, comboMealRepo, addOnGroupRepo,
		imageRepo, minioSvc, cacheSvc, enqueuer, recorder)
	menuSvc := services.NewMenuService(menuRepo, assignmentRepo, foodItemRepo, cacheSvc, recorder)
	catalogSvc := services.NewCatalogService(addOnGroupRepo, addOnRepo, variationGroupRepo, variationRepo,
		buffetRepo, comboMealRepo, foodItemRepo, enqueuer, recorder)
	availabilitySvc := services.NewAvailabilityService(menuRepo, assignmentRepo, foodItemRepo, enqueuer, recorder)
	importSvc := services.NewCatalogImportService(categoryRepo, foodItemRepo, assignmentRepo,
		addOnGroupRepo, addOnRepo, variationGroupRepo, variationRepo, enqueuer, recorder, cfg.Import.MaxRows)
	exportSvc := services.NewCatalogExportService(categoryRepo, foodItemRepo, assignmentRepo,
		addOnGroupRepo, addOnRepo, variationGroupRepo, variationRepo)

	// Task worker
	worker := jobs.NewWorker(availabilitySvc, translationSvc)
	asynqSrv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Queuing.Concurrency,
		Queues:      cfg.Queuing.QueuePriorities,
	})
	mux := asynq.NewServeMux()
	worker.Register(mux)
	go func() {
		if err := asynqSrv.Run(mux); err != nil {
			log.Fatalf("Task worker failed: %v", err)
		}
	}()

	// Background jobs
	scheduler := background.NewJobScheduler(foodItemRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}

	// Handlers
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, version)
	categoryHandlers := handlers.NewCategoryHandlers(categorySvc)
	foodItemHandlers := handlers.NewFoodItemHandlers(foodItemSvc, availabilitySvc)
	menuHandlers := handlers.NewMenuHandlers(menuSvc, availabilitySvc)
	catalogHandlers := handlers.NewCatalogHandlers(catalogSvc)
	importHandlers := handlers.NewImportHandlers(importSvc, int64(cfg.Import.MaxFileBytes))
	exportHandlers := handlers.NewExportHandlers(exportSvc)
	translationHandlers := handlers.NewTranslationHandlers(translationSvc)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	// Protected routes
	v1 := e.Group("/v1")
	v1.Use(echojwt.WithConfig(middleware.JWTConfig(cfg.Server.JWTSecret)))
	v1.Use(middleware.ScopeFromToken())

	// Category routes
	v1.GET("/categories", categoryHandlers.ListCategories)
	v1.POST("/categories", categoryHandlers.CreateCategory)
	v1.GET("/categories/:id", categoryHandlers.GetCategory)
	v1.PUT("/categories/:id", categoryHandlers.UpdateCategory)
	v1.DELETE("/categories/:id", categoryHandlers.DeleteCategory)

	// Food item routes
	v1.GET("/food-items", foodItemHandlers.ListFoodItems)
	v1.POST("/food-items", foodItemHandlers.CreateFoodItem)
	v1.GET("/food-items/:id", foodItemHandlers.GetFoodItem)
	v1.PUT("/food-items/:id", foodItemHandlers.UpdateFoodItem)
	v1.DELETE("/food-items/:id", foodItemHandlers.DeleteFoodItem)
	v1.PUT("/food-items/:id/active", foodItemHandlers.SetFoodItemActive)
	v1.PUT("/food-items/:id/labels", foodItemHandlers.SetLabels)
	v1.PUT("/food-items/:id/addon-groups", foodItemHandlers.SetAddOnGroups)
	v1.POST("/food-items/:id/discounts", foodItemHandlers.AddDiscount)
	v1.DELETE("/food-items/:id/discounts/:discount_id", foodItemHandlers.RemoveDiscount)
	v1.POST("/food-items/:id/images", foodItemHandlers.UploadImage)
	v1.GET("/food-items/:id/images", foodItemHandlers.ListImages)
	v1.GET("/food-item-images/:image_id/url", foodItemHandlers.GetImageURL)
	v1.DELETE("/food-item-images/:image_id", foodItemHandlers.DeleteImage)

	// Menu routes
	v1.GET("/menus", menuHandlers.ListMenus)
	v1.POST("/menus", menuHandlers.CreateMenu)
	v1.DELETE("/menus/:type", menuHandlers.DeleteMenu)
	v1.PUT("/menus/:type/active", menuHandlers.SetMenuActive)
	v1.GET("/menus/:type/items", menuHandlers.ListAssignments)
	v1.POST("/menus/:type/items", menuHandlers.AssignItem)
	v1.DELETE("/menus/:type/items/:item_id", menuHandlers.UnassignItem)

	// Add-on routes
	v1.GET("/addon-groups", catalogHandlers.ListAddOnGroups)
	v1.POST("/addon-groups", catalogHandlers.CreateAddOnGroup)
	v1.PUT("/addon-groups/:id", catalogHandlers.UpdateAddOnGroup)
	v1.DELETE("/addon-groups/:id", catalogHandlers.DeleteAddOnGroup)
	v1.GET("/addon-groups/:id/addons", catalogHandlers.ListAddOns)
	v1.POST("/addons", catalogHandlers.CreateAddOn)
	v1.PUT("/addons/:id", catalogHandlers.UpdateAddOn)
	v1.DELETE("/addons/:id", catalogHandlers.DeleteAddOn)

	// Variation routes
	v1.GET("/variation-groups", catalogHandlers.ListVariationGroups)
	v1.POST("/variation-groups", catalogHandlers.CreateVariationGroup)
	v1.PUT("/variation-groups/:id", catalogHandlers.UpdateVariationGroup)
	v1.DELETE("/variation-groups/:id", catalogHandlers.DeleteVariationGroup)
	v1.GET("/variation-groups/:id/variations", catalogHandlers.ListVariations)
	v1.POST("/variations", catalogHandlers.CreateVariation)
	v1.PUT("/variations/:id", catalogHandlers.UpdateVariation)
	v1.DELETE("/variations/:id", catalogHandlers.DeleteVariation)

	// Buffet routes
	v1.GET("/buffets", catalogHandlers.ListBuffets)
	v1.POST("/buffets", catalogHandlers.CreateBuffet)
	v1.PUT("/buffets/:id", catalogHandlers.UpdateBuffet)
	v1.DELETE("/buffets/:id", catalogHandlers.DeleteBuffet)

	// Combo meal routes
	v1.GET("/combo-meals", catalogHandlers.ListComboMeals)
	v1.POST("/combo-meals", catalogHandlers.CreateComboMeal)
	v1.GET("/combo-meals/:id", catalogHandlers.GetComboMeal)
	v1.PUT("/combo-meals/:id", catalogHandlers.UpdateComboMeal)
	v1.DELETE("/combo-meals/:id", catalogHandlers.DeleteComboMeal)

	// Sheet import routes
	v1.POST("/imports/food-items", importHandlers.ImportFoodItems)
	v1.POST("/imports/addons", importHandlers.ImportAddOns)
	v1.POST("/imports/variations", importHandlers.ImportVariations)

	// Sheet export routes
	v1.GET("/exports/food-items", exportHandlers.ExportFoodItems)
	v1.GET("/exports/addons", exportHandlers.ExportAddOns)
	v1.GET("/exports/variations", exportHandlers.ExportVariations)

	// Translation routes
	v1.GET("/translations/:entity_type/:id", translationHandlers.ListTranslations)
	v1.PUT("/translations/:entity_type/:id", translationHandlers.SetManualTranslation)
	v1.POST("/translations/:entity_type/:id/refresh", translationHandlers.RefreshTranslations)

	// Start server
	go func() {
		log.Printf("Menucraft server v%s starting on port %d", version, cfg.Server.Port)
		if err := e.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
	asynqSrv.Shutdown()
	if err := scheduler.Stop(); err != nil {
		log.Printf("Scheduler shutdown failed: %v", err)
	}
}
