package main // Entry point package

import (
    "context"
    "log"
    "os"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
    "github.com/rs/zerolog"

    "github.com/mzhydenko/airport-api/internal/config"
    "github.com/mzhydenko/airport-api/internal/database"
    "github.com/mzhydenko/airport-api/internal/handler"
    "github.com/mzhydenko/airport-api/internal/middleware"
    "github.com/mzhydenko/airport-api/internal/queue"
    "github.com/mzhydenko/airport-api/internal/repository"
    "github.com/mzhydenko/airport-api/internal/router"
)

func main() {
    _ = godotenv.Load() // .env is optional; real deployments set env directly

    cfg := config.Load()

    logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "airport-api").Logger()
    if cfg.Env == "dev" {
        logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
    }

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("open database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
    if err := database.Migrate(ctx, db, "migrations"); err != nil {
        cancel()
        log.Fatalf("apply migrations: %v", err)
    }
    cancel()

    rdb := config.NewRedisClient()

    // Repositories
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    types := repository.NewAirplaneTypeRepo(db)
    countries := repository.NewCountryRepo(db)
    crews := repository.NewCrewRepo(db)
    airports := repository.NewAirportRepo(db)
    airplanes := repository.NewAirplaneRepo(db)
    routes := repository.NewRouteRepo(db)
    flights := repository.NewFlightRepo(db)
    orders := repository.NewOrderRepo(db)

    // Handlers
    auth := handler.NewAuthHandler(cfg, users, tokens)
    api := router.APIHandlers{
        Catalog:   handler.NewCatalogHandler(types, countries, crews),
        Airports:  handler.NewAirportHandler(airports),
        Airplanes: handler.NewAirplaneHandler(airplanes, cfg.MediaRoot),
        Routes:    handler.NewRouteHandler(routes),
        Flights:   handler.NewFlightHandler(flights),
        Orders:    handler.NewOrderHandler(orders, flights),
    }

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.RequestID())
    e.Use(middleware.RequestLogger(logger))
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, auth, cfg.JWTSecret)
    router.RegisterAPI(e, api, cfg.JWTSecret, middleware.DefaultPolicy(), cacheMW)
    router.RegisterMedia(e, cfg.MediaRoot)

    go queue.StartOrderConsumer(logger)

    addr := ":" + cfg.Port
    logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
