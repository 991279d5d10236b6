package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"

	"movie-recommendation-service/internal/auth"
	"movie-recommendation-service/internal/config"
	"movie-recommendation-service/internal/database"
	"movie-recommendation-service/internal/handler"
	"movie-recommendation-service/internal/middleware"
	"movie-recommendation-service/internal/notify"
	"movie-recommendation-service/internal/repository"
	"movie-recommendation-service/internal/scheduler"
	"movie-recommendation-service/internal/service"
	"movie-recommendation-service/internal/tmdb"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache, feed and rate limiting", "error", err)
	} else {
		defer rdb.Close()
	}

	jwtm, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)
	if err != nil {
		slog.Error("failed to initialise token manager", "error", err)
		os.Exit(1)
	}

	// Repositories
	users := repository.NewUserRepository(db)
	movies := repository.NewMovieRepository(db)
	reviews := repository.NewReviewRepository(db)
	reminders := repository.NewReminderRepository(db)
	people := repository.NewPersonRepository(db)
	lists := repository.NewListRepository(db)
	forums := repository.NewForumRepository(db)
	articles := repository.NewArticleRepository(db)
	analytics := repository.NewAnalyticsRepository(db)

	// Notifications and the reminder job
	dashboard := notify.NewDashboardChannel(rdb)
	dispatcher := notify.NewRouter(notify.NewEmailChannel(cfg.SMTP), dashboard)
	reminderJob := scheduler.New(reminders, users, movies, dispatcher, cfg.Reminder)

	recs := service.NewRecommendationService(users, movies, rdb)
	h := handler.New(handler.Services{
		Users:           service.NewUserService(users, jwtm, cfg.Auth.BcryptCost, recs),
		Movies:          service.NewMovieService(movies, rdb),
		Reviews:         service.NewReviewService(movies, reviews),
		Similarity:      service.NewSimilarityService(movies),
		Recommendations: recs,
		Reminders:       service.NewReminderService(reminders, movies),
		People:          service.NewPersonService(people, movies, rdb),
		Lists:           service.NewListService(lists, movies),
		Forums:          service.NewForumService(forums),
		Articles:        service.NewArticleService(articles),
		Admin:           service.NewAdminService(analytics),
		Catalog:         service.NewCatalogService(tmdb.NewClient(cfg.TMDB), movies, people, rdb),
		Feed:            dashboard,
		Runner:          reminderJob,
	})

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      handler.ServiceName,
		ServerHeader: handler.ServiceName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: handler.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", h.Health)

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	}
	handler.RegisterSwagger(app, swaggerYAML)

	// API routes
	limiter := middleware.NewRateLimiter(rdb, cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	api := app.Group("/api/v1", limiter.Handler())
	h.Routes(api, middleware.Authenticate(jwtm))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background jobs
	hook := (&sutureslog.Handler{Logger: log}).MustHook()
	sup := suture.New("moviebuff", suture.Spec{EventHook: hook})
	sup.Add(reminderJob)
	supDone := sup.ServeBackground(ctx)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		slog.Info("shutting down movie recommendation service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie recommendation service", "addr", addr)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}

	stop()
	if err := <-supDone; err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("supervisor stopped with error", "error", err)
	}
}
