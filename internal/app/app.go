package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/jacketapp/jacketapp/internal/config"
	"github.com/jacketapp/jacketapp/internal/db"
	"github.com/jacketapp/jacketapp/internal/notify"
	"github.com/jacketapp/jacketapp/internal/recommend"
	"github.com/jacketapp/jacketapp/internal/repository"
	"github.com/jacketapp/jacketapp/internal/scheduler"
	"github.com/jacketapp/jacketapp/internal/service"
	"github.com/jacketapp/jacketapp/internal/sms"
	"github.com/jacketapp/jacketapp/internal/weather"
)

type App struct {
	Cfg         *config.Config
	DB          *sqlx.DB
	Redis       *redis.Client
	Scheduler   *scheduler.Scheduler
	AuthService *service.AuthService
	UserService *service.UserService
	Lockout     *service.LockoutGuard
	Weather     *weather.Gateway
	Recommender *recommend.Generator
	SMS         *sms.Dispatcher
	Pipeline    *notify.Pipeline
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)

	// Redis is optional; rate limiting and lockout degrade gracefully
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		slog.Info("redis not configured, using in-memory rate limiting")
	}

	// External providers
	weatherGateway := weather.NewGateway(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.DefaultZipcode)
	recommender := recommend.NewGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	smsDispatcher := sms.NewDispatcher(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)

	// Notification pipeline and scheduler
	pipeline := notify.NewPipeline(userRepository, weatherGateway, recommender, smsDispatcher, cfg.AppName)
	sched, err := scheduler.New(cfg.SchedulerTimezone, pipeline.Run)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize scheduler: %v", err)
	}

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry, cfg.IsProduction())
	userService := service.NewUserService(userRepository, authService, sched)
	lockout := service.NewLockoutGuard(redisClient)

	return &App{
		Cfg:         cfg,
		DB:          database,
		Redis:       redisClient,
		Scheduler:   sched,
		AuthService: authService,
		UserService: userService,
		Lockout:     lockout,
		Weather:     weatherGateway,
		Recommender: recommender,
		SMS:         smsDispatcher,
		Pipeline:    pipeline,
	}, nil
}

func (a *App) Close() error {
	if a.Scheduler != nil {
		if err := a.Scheduler.Shutdown(); err != nil {
			slog.Error("scheduler shutdown failed", "error", err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			slog.Error("redis close failed", "error", err)
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
