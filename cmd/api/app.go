package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/cache"
	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/events"
	adapterHTTP "github.com/comitanigiacomo/ecotrack-api/internal/adapters/handler/http"
	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/llm"
	"github.com/comitanigiacomo/ecotrack-api/internal/adapters/repository"
	"github.com/comitanigiacomo/ecotrack-api/internal/config"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/services"
	"github.com/comitanigiacomo/ecotrack-api/internal/core/workers"
)

const publishTimeout = 5 * time.Second

// application is the fully wired service. Close releases every backend that
// was opened.
type application struct {
	router  *gin.Engine
	worker  *workers.GoalWorker
	closers []func() error
}

type repositories struct {
	activities domain.ActivityRepository
	goals      domain.GoalRepository
	users      domain.UserRepository
	reviews    domain.ReviewRepository
}

func newApplication(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*application, error) {
	app := &application{}

	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid default timezone: %w", err)
	}

	db, repos, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if db != nil {
		app.closers = append(app.closers, db.Close)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// The cache and the rate limiter are optional.
			logger.Warn().Err(err).Msg("redis unavailable, continuing without cache and rate limiting")
		} else {
			app.closers = append(app.closers, rdb.Close)
			store := cache.NewJSONStore(rdb, "activities", cfg.CacheTTL)
			repos.activities = repository.NewCachedActivityRepository(repos.activities, store, logger)
			logger.Info().Msg("redis cache enabled")
		}
	}

	var publisher domain.EventPublisher = events.NewLogPublisher(logger)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(events.NewKafkaProducer(cfg.KafkaBrokers), cfg.KafkaTopicPrefix, publishTimeout)
		app.closers = append(app.closers, kafkaPublisher.Close)
		publisher = kafkaPublisher
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Msg("kafka event publishing enabled")
	}

	var model services.LanguageModel
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiModel(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to initialise assistant model: %w", err)
		}
		model = gemini
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set, assistant endpoints will return 503")
	}

	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTDuration, repos.users)
	authService := services.NewAuthService(repos.users, tokenService)
	goalService := services.NewGoalService(repos.goals, repos.activities, publisher, logger)
	app.worker = workers.NewGoalWorker(goalService, cfg.GoalSweepInterval, logger)
	activityService := services.NewActivityService(repos.activities, repos.users, publisher, app.worker, cfg.GuestActivityLimit, logger)
	statsService := services.NewStatsService(repos.activities, repos.goals)
	gamificationService := services.NewGamificationService(repos.activities)
	assistantService := services.NewAssistantService(model, repos.activities, logger)
	reviewService := services.NewReviewService(repos.reviews, publisher, logger)

	app.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:      adapterHTTP.NewAuthHandler(authService),
		ActivityHandler:  adapterHTTP.NewActivityHandler(activityService),
		StatsHandler:     adapterHTTP.NewStatsHandler(statsService, gamificationService),
		GoalHandler:      adapterHTTP.NewGoalHandler(goalService),
		AssistantHandler: adapterHTTP.NewAssistantHandler(assistantService),
		ReviewHandler:    adapterHTTP.NewReviewHandler(reviewService),
		TokenService:     tokenService,
		DB:               db,
		Redis:            rdb,
		Logger:           logger,
		CORSOrigins:      cfg.CORSOrigin,
		RateLimit:        cfg.RateLimit,
		RateLimitWindow:  cfg.RateLimitWindow,
		Location:         loc,
		StartTime:        time.Now(),
	})

	return app, nil
}

func openStorage(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*sqlx.DB, repositories, error) {
	if cfg.Storage == config.StorageMemory {
		logger.Warn().Msg("using in-memory storage, data is lost on restart")
		return nil, repositories{
			activities: repository.NewInMemoryActivityRepository(),
			goals:      repository.NewInMemoryGoalRepository(),
			users:      repository.NewInMemoryUserRepository(),
			reviews:    repository.NewInMemoryReviewRepository(),
		}, nil
	}

	logger.Info().Str("host", cfg.DB.Host).Str("database", cfg.DB.Name).Msg("connecting to database")

	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DB.DSN())
	if err != nil {
		return nil, repositories{}, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := repository.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, repositories{}, err
	}

	logger.Info().Msg("database connected and schema applied")

	return db, repositories{
		activities: repository.NewPostgresActivityRepository(db),
		goals:      repository.NewPostgresGoalRepository(db),
		users:      repository.NewPostgresUserRepository(db.DB),
		reviews:    repository.NewPostgresReviewRepository(db),
	}, nil
}

func (a *application) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
