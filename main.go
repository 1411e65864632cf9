package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/christale-kib/taxiconnect-backend/database"
	"github.com/christale-kib/taxiconnect-backend/internal/config"
	"github.com/christale-kib/taxiconnect-backend/internal/handlers"
	"github.com/christale-kib/taxiconnect-backend/internal/models"
	"github.com/christale-kib/taxiconnect-backend/internal/routes"
	"github.com/christale-kib/taxiconnect-backend/internal/services"
	"github.com/christale-kib/taxiconnect-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	cfg := config.Load()

	// Initialize storage
	var store storage.Store
	var db *gorm.DB

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to database...")
		database.Connect()
		db = database.DB

		if os.Getenv("DB_AUTO_MIGRATE") != "false" {
			log.Println("🔄 Running database migrations...")
			err := db.AutoMigrate(
				&models.Ambassador{},
				&models.Driver{},
				&models.Passenger{},
				&models.Station{},
				&models.Commission{},
				&models.Transaction{},
				&models.WithdrawalRequest{},
				&models.TaxiEnrollment{},
				&models.Challenge{},
				&models.ChallengeParticipation{},
				&models.ObjectiveConfig{},
				&models.Account{},
			)
			if err != nil {
				log.Fatal("Failed to migrate database:", err)
			}
			log.Println("✅ Database migrations completed!")
		}

		store = storage.NewDatabaseStore(db)
		log.Println("✅ Using database storage")
	}

	// Initialize services
	notifier := services.NewNotifyService()
	enrollmentService := services.NewEnrollmentService(store, cfg, notifier)
	ambassadorService := services.NewAmbassadorService(store, cfg)
	taxiService := services.NewTaxiService(store)
	withdrawalService := services.NewWithdrawalService(store, cfg, notifier)
	managerService := services.NewManagerService(store)
	authService := services.NewAuthService(store, cfg, enrollmentService)

	// Seed the manager account and the objective config singleton.
	if err := authService.SeedManager(); err != nil {
		log.Printf("⚠️  Failed to seed manager account: %v", err)
	}
	if _, err := store.GetObjectiveConfig(); err != nil {
		log.Printf("⚠️  Failed to seed objective config: %v", err)
	}

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "TaxiConnect Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Handlers and routes
	h := &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		BA:      handlers.NewBAHandler(authService, ambassadorService, enrollmentService, withdrawalService),
		Taxi:    handlers.NewTaxiHandler(authService, taxiService, enrollmentService),
		Manager: handlers.NewManagerHandler(managerService),
		Health:  handlers.NewHealthHandler("1.0.0", db),
	}
	routes.SetupRoutes(app, h, authService)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 TaxiConnect Backend starting on port %s", cfg.Port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("📱 SMS notifications: %s", smsStatus())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + cfg.Port))
}

func storageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	if os.Getenv("DB_DRIVER") == "mysql" {
		return "MySQL Database"
	}
	return "PostgreSQL Database"
}

func smsStatus() string {
	if os.Getenv("TWILIO_ACCOUNT_SID") == "" {
		return "Not configured"
	}
	return "Configured"
}
