package main

import (
	"context"
	"log"
	"os"

	"restaurant/cmd"
	"restaurant/internal/bom"
	"restaurant/internal/cache"
	"restaurant/internal/catalog"
	"restaurant/internal/core/logger"
	"restaurant/internal/database"
	"restaurant/internal/database/migration"
	"restaurant/internal/middleware"
	"restaurant/internal/orders"
	"restaurant/internal/repository"
	"restaurant/internal/users"
	"restaurant/pkg/auditlog"
	"restaurant/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}
}

func main() {
	if len(os.Args) > 1 {
		cmd.Execute(context.Background())
		return
	}

	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		zapLogger.Fatal("DATABASE_URL is not set")
	}

	if err := migration.Migrate(dbURL, "file://migrations", zapLogger); err != nil {
		zapLogger.Fatal("migration failed: " + err.Error())
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		zapLogger.Fatal("database connection failed: " + err.Error())
	}
	defer db.Close()

	zapLogger.Info("Connected to the database successfully")

	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(repo, zapLogger)

	itemRepo := catalog.NewItemRepository(repo)
	categoryRepo := catalog.NewCategoryRepository(repo)

	graphCache := bom.NewGraphCache(cache.NewMemoryStore(), bom.NewGraphBuilder(repo), zapLogger)
	bomService := bom.NewService(bom.NewIngredientRepository(repo), itemRepo, graphCache)

	checkout := orders.NewCheckoutValidator(itemRepo)
	orderService := orders.NewService(
		orders.NewOrderRepository(repo),
		orders.NewProcessingRepository(repo),
		checkout,
		orders.AcceptAllGateway{},
	)

	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(zapLogger), middleware.RequestID(), gin.Logger())

	catalog.RegisterRoutes(router, itemRepo, categoryRepo)
	bom.RegisterRoutes(router, bomService, auditLog)
	orders.RegisterRoutes(router, orderService, auditLog)
	users.RegisterRoutes(router, users.NewRepository(repo))
	security.NewLoginHandler(repo).RegisterRoutes(router)

	router.GET("/health", middleware.HealthCheckHandler())

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		zapLogger.Fatal("server stopped: " + err.Error())
	}
}
