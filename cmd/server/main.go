package main // Entry point package

import (
    "log" // Startup logging before zap is ready

    "github.com/joho/godotenv"    // Loads .env files in development
    "github.com/labstack/echo/v4" // Echo web framework
    "go.uber.org/zap"

    "github.com/mekbib/stayfinder/internal/config"
    "github.com/mekbib/stayfinder/internal/database"
    "github.com/mekbib/stayfinder/internal/gateway"
    "github.com/mekbib/stayfinder/internal/handler"
    "github.com/mekbib/stayfinder/internal/logger"
    "github.com/mekbib/stayfinder/internal/mail"
    "github.com/mekbib/stayfinder/internal/middleware"
    "github.com/mekbib/stayfinder/internal/notify"
    "github.com/mekbib/stayfinder/internal/queue"
    "github.com/mekbib/stayfinder/internal/repository"
    "github.com/mekbib/stayfinder/internal/router"
)

func main() {
    // .env is optional; in production everything arrives via real env vars.
    _ = godotenv.Load()

    cfg := config.Load()
    zlog := logger.New(cfg.Env)
    defer zlog.Sync()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database connection failed: %v", err)
    }
    defer db.Close()

    // Redis backs response caching and rate limiting.  A nil client just
    // disables both features; the API itself keeps working.
    rdb := config.NewRedisClient()
    if rdb == nil {
        zlog.Warn("redis unavailable, caching and rate limiting disabled")
    }

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    listings := repository.NewListingRepo(db)
    bookings := repository.NewBookingRepo(db)
    payments := repository.NewPaymentRepo(db)
    reviews := repository.NewReviewRepo(db)

    chapa := gateway.NewClient(cfg.Gateway, zlog)
    dispatcher := notify.NewAMQPDispatcher(cfg.AMQPURL, zlog)

    // The notification worker runs inside the server process: it consumes
    // queued events and delivers emails over SMTP, reconnecting to the
    // broker on its own.
    mailer := mail.NewMailer(cfg.Mail)
    go queue.StartNotificationConsumer(cfg.AMQPURL, mailer, zlog)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    hostH := handler.NewHostHandler(listings)
    publicH := handler.NewPublicHandler(listings)
    guestH := handler.NewGuestHandler(listings, bookings, payments, reviews, users,
        chapa, dispatcher, cfg.Gateway.Currency, zlog)

    e := echo.New()
    e.HideBanner = true

    // Global rate limiting; the cache middleware is scoped to the public
    // browse routes only.
    e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
    cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH, cacheMW)
    router.RegisterHost(e, hostH, cfg.JWTSecret)
    router.RegisterGuest(e, guestH, cfg.JWTSecret)

    addr := ":" + cfg.Port
    zlog.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
    if err := e.Start(addr); err != nil {
        zlog.Fatal("server stopped", zap.Error(err))
    }
}
