package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"furnistore/internal/handlers"
	"furnistore/internal/middleware"
	"furnistore/internal/models"
	"furnistore/internal/repositories"
	"furnistore/internal/services"
	"furnistore/pkg/rabbitmq"
)

// App holds the constructed application: the HTTP surface, the persistence
// handle, the message broker client and the three services. It is built
// once at startup and passed explicitly wherever needed; there is no
// ambient global.
type App struct {
	Fiber          *fiber.App
	DB             *gorm.DB
	MQ             *rabbitmq.Client
	UserService    *services.UserService
	ProductService *services.ProductService
	CartService    *services.CartService
}

// loadConfig sets up Viper with defaults and environment overrides.
func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=furnistore port=5432 sslmode=disable")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("IMAGE_TARGET_WIDTH", 300)
	v.SetDefault("ENFORCE_AUTH", false)
	v.AutomaticEnv() // Load environment variables
	return v
}

// openDatabase opens a GORM connection for the configured driver and
// migrates the three collections.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.CartItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// NewApp wires repositories, services and handlers onto a Fiber app. The
// RabbitMQ client may be nil; cart events are then skipped.
func NewApp(v *viper.Viper, db *gorm.DB, mq *rabbitmq.Client) (*App, error) {
	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo, jwtSecret)
	productService := services.NewProductService(productRepo, v.GetInt("IMAGE_TARGET_WIDTH"))
	var publisher services.EventPublisher
	if mq != nil {
		publisher = mq
	}
	cartService := services.NewCartService(cartRepo, publisher)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)

	// --- Fiber app ---
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // image uploads are capped at 10 MB
	})

	// --- Middleware ---
	app.Use(logger.New()) // Request logger
	app.Use(cors.New())   // Permissive cross-origin access

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to our furniture website!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")

	// User routes stay public: register and login must be reachable without
	// a token. Product and cart routes are gated only when token
	// enforcement is switched on.
	userHandler.RegisterRoutes(api)

	serviceRoutes := fiber.Router(api)
	if v.GetBool("ENFORCE_AUTH") {
		serviceRoutes = api.Group("", middleware.AuthRequired(userService))
	}
	productHandler.RegisterRoutes(serviceRoutes)
	cartHandler.RegisterRoutes(serviceRoutes)

	return &App{
		Fiber:          app,
		DB:             db,
		MQ:             mq,
		UserService:    userService,
		ProductService: productService,
		CartService:    cartService,
	}, nil
}

func main() {
	v := loadConfig()

	// --- Database ---
	db, err := openDatabase(v.GetString("DB_DRIVER"), v.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// --- RabbitMQ client (optional) ---
	var mqClient *rabbitmq.Client
	if url := v.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, cart events disabled: %v", err)
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	// --- Application ---
	app, err := NewApp(v, db, mqClient)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Cart event consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for cart events...")
		messageHandler := func(msg amqp.Delivery) error {
			log.Printf("Received cart event %s (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
			return nil
		}
		if consumerErr := mqClient.ConsumeCartEvents(messageHandler); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	appPort := v.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Fiber.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Fiber.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
