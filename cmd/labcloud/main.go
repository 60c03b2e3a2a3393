package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/labcloud/internal/application/apiconfig"
	"github.com/amirhosseinghanipour/labcloud/internal/application/command"
	"github.com/amirhosseinghanipour/labcloud/internal/application/device"
	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
	"github.com/amirhosseinghanipour/labcloud/internal/application/progress"
	"github.com/amirhosseinghanipour/labcloud/internal/application/state"
	"github.com/amirhosseinghanipour/labcloud/internal/config"
	infraauth "github.com/amirhosseinghanipour/labcloud/internal/infrastructure/auth"
	httprouter "github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/handlers"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/http/middleware"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/persistence/postgres"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/pubsub"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/queue"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/ratelimit"
	"github.com/amirhosseinghanipour/labcloud/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	projectRepo := postgres.NewProjectRepository(pool)
	bindingRepo := postgres.NewBindingRepository(pool)
	stateRepo := postgres.NewStateRepository(pool)
	progressRepo := postgres.NewProgressRepository(pool)

	var commandSink ports.CommandSink
	if redisClient != nil {
		commandSink = pubsub.NewRedisSink(redisClient, log)
	} else {
		commandSink = pubsub.NewNoopSink()
	}

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqEnq, err := queue.NewAsynqEnqueuer(asynqOpt, log)
		if err != nil {
			log.Fatal().Err(err).Msg("create asynq enqueuer")
		}
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, commandSink, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewSyncEnqueuer(commandSink, log)
	}

	pemBytes, err := cfg.LoadJWTPublicKey()
	if err != nil {
		log.Fatal().Err(err).Msg("load JWT public key")
	}
	publicKey, err := infraauth.LoadRSAPublicKeyFromPEM(pemBytes)
	if err != nil {
		log.Fatal().Err(err).Msg("parse JWT public key")
	}
	verifier := infraauth.NewTokenVerifier(publicKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	writeStateUC := state.NewWriteState(projectRepo, stateRepo, progressRepo, log)
	readStateUC := state.NewReadState(projectRepo, stateRepo)
	clearHistoryUC := state.NewClearHistory(projectRepo, stateRepo)
	createBindingUC := apiconfig.NewCreateBinding(bindingRepo, security.GenerateAPIKey)
	updateTemplateUC := apiconfig.NewUpdateTemplate(bindingRepo)
	resolver := device.NewResolver(bindingRepo)
	setStatusUC := progress.NewSetStatus(progressRepo)
	sendCommandUC := command.NewSendCommand(taskEnqueuer)

	governor := ratelimit.NewSlidingWindow()
	defer governor.Stop()

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	secureMiddleware := middleware.APIHeaders(cfg.Secure.IsDevelopment)
	requireSession := middleware.NewSessionValidator(verifier).Handler
	requireAdmin := middleware.RequireAdminSecret(cfg.Admin.Secret)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		ApplianceHandler:  handlers.NewApplianceHandler(writeStateUC, readStateUC, clearHistoryUC, log),
		WaterLevelHandler: handlers.NewWaterLevelHandler(writeStateUC, readStateUC, clearHistoryUC, log),
		DeviceHandler:     handlers.NewDeviceHandler(resolver, writeStateUC, readStateUC, log),
		APIConfigHandler:  handlers.NewAPIConfigHandler(createBindingUC, updateTemplateUC, bindingRepo, log),
		ProjectHandler:    handlers.NewProjectHandler(projectRepo, log),
		CommandHandler:    handlers.NewCommandHandler(sendCommandUC, log),
		AdminHandler:      handlers.NewAdminHandler(projectRepo, setStatusUC, log),
		HealthHandler:     healthHandler,
		RequireSession:    requireSession,
		RequireAdmin:      requireAdmin,
		Governor:          governor,
		DeviceRateLimit:   cfg.RateLimit.DeviceRateLimit,
		Log:               log,
		Secure:            secureMiddleware,
		IPRateLimit:       ipLimit,
		Metrics:           true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
