package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"content-api/internal/api/handlers"
	"content-api/internal/config"
	"content-api/internal/middleware"
	"content-api/internal/models"
	"content-api/internal/repository"
	"content-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	db, err := initDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Get underlying *sql.DB instance for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get underlying *sql.DB instance:", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx := context.Background()

	cacheService, err := services.NewRedisCacheService(cfg.Cache)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	generationService, err := services.NewGeminiGenerationService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ProviderWait)
	if err != nil {
		log.Fatal("Failed to initialize generation provider:", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Print("Warning: GEMINI_API_KEY not set, generation requests will be rejected")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	usageRepo := repository.NewUsageRepository(db)
	contentRepo := repository.NewContentRepository(db, usageRepo)
	paymentRepo := repository.NewPaymentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, subscriptionRepo, planRepo, cacheService, cfg.JWTSecret)
	quotaService := services.NewQuotaService(subscriptionRepo, usageRepo, config.DefaultFreePlan())
	contentService := services.NewContentService(contentRepo, quotaService, generationService)
	planService := services.NewPlanService(planRepo, subscriptionRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, userRepo)

	if err := planService.SeedDefaults(ctx, config.SeedPlans()); err != nil {
		log.Fatal("Failed to seed subscription plans:", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	contentHandler := handlers.NewContentHandler(contentService, quotaService)
	adminHandler := handlers.NewAdminHandler(planService, paymentService)

	// Initialize router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/health", handlers.HealthCheckHandler(db)).Methods("GET")

	// API routes (protected)
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware(authService))
	apiRouter.Use(middleware.LogRequest)

	apiRouter.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	apiRouter.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	apiRouter.HandleFunc("/content/generate", contentHandler.Generate).Methods("POST")
	apiRouter.HandleFunc("/content/history", contentHandler.History).Methods("GET")
	apiRouter.HandleFunc("/content/{id}", contentHandler.Delete).Methods("DELETE")
	apiRouter.HandleFunc("/usage", contentHandler.Usage).Methods("GET")

	// Admin routes
	adminRouter := router.PathPrefix("/api/v1/admin").Subrouter()
	adminRouter.Use(middleware.AdminMiddleware(authService))
	adminRouter.Use(middleware.LogRequest)

	adminRouter.HandleFunc("/plans", adminHandler.ListPlans).Methods("GET")
	adminRouter.HandleFunc("/plans/{id}", adminHandler.UpdatePlan).Methods("PUT")
	adminRouter.HandleFunc("/subscriptions", adminHandler.AssignSubscription).Methods("POST")
	adminRouter.HandleFunc("/subscriptions/cancel", adminHandler.CancelSubscription).Methods("POST")
	adminRouter.HandleFunc("/payments", adminHandler.RecordPayment).Methods("POST")
	adminRouter.HandleFunc("/payments", adminHandler.ListPayments).Methods("GET")
	adminRouter.HandleFunc("/password", authHandler.ChangePassword).Methods("POST")

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	// Create server with timeouts
	srv := &http.Server{
		Handler:      corsMiddleware.Handler(router),
		Addr:         ":" + cfg.Port,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	// Start server
	log.Printf("Server starting on port %s...", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}

func initDB(dbURL string) (*gorm.DB, error) {
	// Configure GORM logger
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	// Open connection
	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %v", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("error migrating database: %v", err)
	}

	return db, nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.DailyUsage{},
		&models.MonthlyUsage{},
		&models.GeneratedContent{},
		&models.ManualPayment{},
	)
}
