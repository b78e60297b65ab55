package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/mostafakamar/hafla-store/docs"
	"github.com/mostafakamar/hafla-store/internal/adapter/api/controller"
	"github.com/mostafakamar/hafla-store/internal/adapter/api/route"
	pgrepo "github.com/mostafakamar/hafla-store/internal/adapter/repository"
	"github.com/mostafakamar/hafla-store/internal/adapter/repository/memory"
	"github.com/mostafakamar/hafla-store/internal/cache"
	"github.com/mostafakamar/hafla-store/internal/infrastructure/database"
	"github.com/mostafakamar/hafla-store/pkg/assistant"
	"github.com/mostafakamar/hafla-store/pkg/logger"
	"github.com/mostafakamar/hafla-store/pkg/repository"
)

// App holds the application and its dependencies
type App struct {
	router *gin.Engine
	logger logger.Logger
	close  func()
}

// NewApp wires the application together. With DATABASE_URL (or DB_HOST)
// configured it runs against PostgreSQL; otherwise it falls back to the
// seeded in-memory store for dev mode.
func NewApp() (*App, error) {
	log := logger.NewLogger()

	var (
		products repository.ProductRepository
		users    repository.UserRepository
		orders   repository.OrderRepository
		audit    repository.AuditRepository
		closeFn  = func() {}
	)

	if os.Getenv("DATABASE_URL") != "" || os.Getenv("DB_HOST") != "" {
		pool, err := database.NewPostgresDB()
		if err != nil {
			return nil, fmt.Errorf("failed to connect to the database: %w", err)
		}
		products = pgrepo.NewProductRepository(pool)
		users = pgrepo.NewUserRepository(pool)
		orders = pgrepo.NewOrderRepository(pool)
		audit = pgrepo.NewAuditRepository(pool)
		closeFn = pool.Close
		log.Info("using PostgreSQL store")
	} else {
		store := memory.NewSeeded()
		products = store
		users = store.Users()
		orders = store.Orders()
		audit = store
		log.Warn("DATABASE_URL not set, using the seeded in-memory store")
	}

	var catalogCache cache.CatalogCache = cache.NoopCatalogCache{}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		catalogCache = cache.NewRedisCatalogCache(addr, os.Getenv("REDIS_PASSWORD"), db)
		log.Info("catalog cache enabled", "addr", addr)
	}

	resolver := assistant.NewResolver()
	mutator := pgrepo.NewMutator(products, audit)
	hub := assistant.NewHub(log, mutator, assistant.LoggerNotifier{Logger: log})

	authController := controller.NewAuthController(users, log)
	productController := controller.NewProductController(products, catalogCache, log)
	orderController := controller.NewOrderController(orders, products, catalogCache, log)
	assistantController := controller.NewAssistantController(resolver, hub, products, catalogCache, log)

	router := gin.Default()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	api := router.Group("/api/v1")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	route.SetupAuthRoutes(api, authController)
	route.SetupProductRoutes(api, productController)
	route.SetupOrderRoutes(api, orderController)
	route.SetupAssistantRoutes(api, assistantController)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &App{
		router: router,
		logger: log,
		close:  closeFn,
	}, nil
}

// Start runs the HTTP server
func (a *App) Start() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	a.logger.Info("starting server", "port", port)
	return a.router.Run(":" + port)
}

// Close releases the application resources
func (a *App) Close() {
	a.close()
}
