package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"catalog/internal/handlers"
	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("SQLITE_PATH", "catalog.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("AUTH_TOKEN", "secrettoken")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	databaseDSN := viper.GetString("DATABASE_DSN")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")
	authToken := viper.GetString("AUTH_TOKEN")

	// --- Logger ---
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// --- Database ---
	// PostgreSQL when a DSN is configured, SQLite otherwise.
	var (
		db  *gorm.DB
		err error
	)
	if databaseDSN != "" {
		db, err = gorm.Open(postgres.Open(databaseDSN), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- RabbitMQ (optional) ---
	// Product lifecycle events are published only when a broker is configured.
	var events services.EventPublisher
	if rabbitMQURL != "" {
		mqClient, mqErr := rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if mqErr != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", mqErr)
		}
		defer mqClient.Close()
		events = mqClient
		log.Info("RabbitMQ client connected, product events enabled")
	}

	// --- Wiring ---
	productRepo := repositories.NewGORMProductRepository(db)
	productService := services.NewProductService(productRepo, events, log)
	productHandler := handlers.NewProductHandler(productService)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(log),
	})

	// --- Middleware ---
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.BearerAuth("/api/products", authToken))

	// --- API Routes ---
	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP Server ---
	log.Infof("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during Fiber shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
