package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/swaggo/swag"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	_ "catalogo/docs"
	"catalogo/internal/config"
	"catalogo/internal/handlers"
	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"
	"catalogo/pkg/rabbitmq"
)

// NewApp assembles the Fiber application from its injected dependencies.
// The store handle and the event publisher are constructed once by the
// caller and shared across all requests.
func NewApp(cfg *config.Config, repo repositories.ProductRepository, publisher services.EventPublisher) *fiber.App {
	productService := services.NewProductService(repo, publisher)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()

	// Only the configured origins may call the API.
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
	}))
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New()) // Request logger

	productHandler.RegisterRoutes(app.Group("/api/products"))

	// Machine-readable API description.
	app.Get("/doc", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			log.Printf("Error reading swagger doc: %v", err)
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}

// openDatabase opens the GORM handle for the configured driver.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseDSN)
	default:
		dialector = postgres.Open(cfg.DatabaseDSN)
	}
	return gorm.Open(dialector, &gorm.Config{})
}

func main() {
	cfg := config.Load()

	// --- Entity store ---
	var repo repositories.ProductRepository
	var db *gorm.DB
	if cfg.DatabaseDSN != "" {
		var err error
		db, err = openDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&models.Product{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		repo = repositories.NewGORMProductRepository(db)
	} else {
		log.Println("DATABASE_DSN not set, using in-memory product store")
		repo = repositories.NewInMemoryProductRepository()
	}

	// --- Event publisher (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQEnabled {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient
	}

	app := NewApp(cfg, repo, publisher)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Starting server on %s", cfg.AppPort)
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	log.Println("Server gracefully stopped")
}
