package main // entry point for the menu management API server

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Ajeyanth/SafeServeBackend/internal/config"
	"github.com/Ajeyanth/SafeServeBackend/internal/database"
	"github.com/Ajeyanth/SafeServeBackend/internal/handler"
	"github.com/Ajeyanth/SafeServeBackend/internal/middleware"
	"github.com/Ajeyanth/SafeServeBackend/internal/queue"
	"github.com/Ajeyanth/SafeServeBackend/internal/repository"
	"github.com/Ajeyanth/SafeServeBackend/internal/router"
	queuepublisher "github.com/Ajeyanth/SafeServeBackend/internal/service"
)

func main() {
	// Load .env if present; real deployments set variables directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories own all SQL; handlers never touch *sql.DB directly.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	restaurants := repository.NewRestaurantRepo(db)
	categories := repository.NewCategoryRepo(db)
	menuItems := repository.NewMenuItemRepo(db)

	publisher := queuepublisher.New(queue.BrokerURL())

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(restaurants, menuItems)
	ownerH := handler.NewOwnerHandler(restaurants, categories, menuItems, publisher)
	qrH := handler.NewQRHandler(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis is optional: a nil client disables caching and rate limiting
	// without affecting the rest of the API.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cacheMW)
	router.RegisterOwner(e, ownerH, qrH, cfg.JWTSecret)

	// Consumer appends menu change events to logs/menu.log. It reconnects
	// on its own, so a missing broker never blocks startup.
	go func() {
		if err := queue.StartMenuConsumer(); err != nil {
			log.Printf("menu-consumer: stopped: %v", err)
		}
	}()

	log.Printf("listening on :%s (%s)", cfg.Port, cfg.Env)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
