package main

import (
	"log"
	"time"

	"github.com/futsala/futsala-backend/config"
	"github.com/futsala/futsala-backend/internal/consumer"
	"github.com/futsala/futsala-backend/internal/handler"
	"github.com/futsala/futsala-backend/internal/middleware"
	"github.com/futsala/futsala-backend/internal/notifier"
	"github.com/futsala/futsala-backend/internal/repository"
	"github.com/futsala/futsala-backend/internal/service"
	"github.com/futsala/futsala-backend/pkg/database"
	"github.com/futsala/futsala-backend/pkg/rabbitmq"
	"github.com/futsala/futsala-backend/pkg/ratelimit"
	"github.com/futsala/futsala-backend/pkg/token"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	tokens := token.NewManager(
		cfg.JWTSecret,
		cfg.JWTRefreshSecret,
		time.Duration(cfg.AccessTTLMin)*time.Minute,
		time.Duration(cfg.RefreshTTLHr)*time.Hour,
	)

	// RabbitMQ is optional: without a broker the service still takes
	// bookings, it just skips notifications.
	var publisher *rabbitmq.Publisher
	if cfg.RabbitURL != "" {
		var err error
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()

		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}
		consumer.NewNotificationConsumer(notifier.NewConsole()).Start(msgs)
	} else {
		log.Println("RABBIT_URL not set, notifications disabled")
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, tokens, publisher)
	venueSvc := service.NewVenueService(venueRepo)
	bookingSvc := service.NewBookingService(bookingRepo, courtRepo, publisher)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "futsala-backend"})
	})

	var loginLimiter echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		loginLimiter = ratelimit.NewRedisLimiter(
			rdb,
			cfg.LoginRateLimit,
			time.Duration(cfg.LoginRateWindow)*time.Second,
			"login",
		).Middleware()
	} else {
		log.Println("REDIS_ADDR not set, login rate limiting disabled")
	}

	handler.NewAuthHandler(authSvc, tokens).RegisterRoutes(e.Group("/api/v1/auth"), loginLimiter)
	handler.NewVenueHandler(venueSvc).RegisterRoutes(e.Group("/api/v1/futsal"))
	handler.NewBookingHandler(bookingSvc, tokens).RegisterRoutes(e.Group("/api/v1/bookings"))

	log.Printf("Futsala backend starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
