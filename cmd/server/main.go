package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	identityapp "github.com/orbita/backend/internal/application/identity"
	meetingapp "github.com/orbita/backend/internal/application/meeting"
	"github.com/orbita/backend/internal/application/minutes"
	notificationapp "github.com/orbita/backend/internal/application/notification"
	"github.com/orbita/backend/internal/domain/shared"
	"github.com/orbita/backend/internal/infrastructure/auth"
	"github.com/orbita/backend/internal/infrastructure/config"
	"github.com/orbita/backend/internal/infrastructure/event"
	"github.com/orbita/backend/internal/infrastructure/lock"
	"github.com/orbita/backend/internal/infrastructure/logger"
	"github.com/orbita/backend/internal/infrastructure/mail"
	"github.com/orbita/backend/internal/infrastructure/persistence"
	"github.com/orbita/backend/internal/infrastructure/printing"
	"github.com/orbita/backend/internal/infrastructure/scheduler"
	"github.com/orbita/backend/internal/infrastructure/storage"
	"github.com/orbita/backend/internal/infrastructure/telemetry"
	"github.com/orbita/backend/internal/interfaces/http/handler"
	"github.com/orbita/backend/internal/interfaces/http/middleware"
	"github.com/orbita/backend/internal/interfaces/http/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/orbita/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:generate go run github.com/swaggo/swag/v2/cmd/swag@v2.0.0-rc5 init -d ../.. -g cmd/server/main.go -o ../../docs --parseInternal

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Orbita Atas API
//	@version		1.0
//	@description	Meetings, their work items and minutes delivery.

//	@host		localhost:3000
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	CallerKey
//	@in							header
//	@name						X-User-Key
//	@description				Caller initials or email. Omitting it acts as the anonymous caller.

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Caller token from /auth/token. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Orbita backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Continuous profiling; spans carry their id into the CPU profiles
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfigFrom(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	metrics := telemetry.NewMetrics()
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.RegisterCollectors(registry); err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	// Registries and their snapshot stores
	regs, err := persistence.OpenRegistries(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", zap.Error(err))
	}
	defer func() {
		if err := regs.Close(context.Background()); err != nil {
			log.Error("Error closing storage", zap.Error(err))
		}
	}()

	checks := map[string]handler.HealthCheck{}

	// Meeting lock and token revocations: redis when enabled, process memory otherwise
	var locker shared.Locker = lock.NewMemoryLocker()
	var revocations auth.Revocations = auth.NewMemoryRevocations()
	if cfg.Redis.Enabled {
		redisClient, err := lock.NewRedisClient(ctx, fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		locker = lock.NewRedisLocker(redisClient, lock.RedisLockerConfig{TTL: cfg.Redis.LockTTL}, log)
		revocations = auth.NewRedisRevocations(redisClient)
		checks["redis"] = redisCheck(redisClient)
		log.Info("Redis connected", zap.String("host", cfg.Redis.Host))
	}

	// Object storage for offloaded attachments and archived minutes
	var objects meetingapp.ObjectStorage
	var archive minutes.Archive
	if cfg.ObjectStorage.Enabled {
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.ObjectStorage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.ObjectStorage.PresignTTL))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare object storage bucket", zap.Error(err))
		}
		archive = s3Storage
		if cfg.ObjectStorage.OffloadAttachments {
			objects = s3Storage
		}
		checks["object_storage"] = func(ctx context.Context) error {
			_, err := s3Storage.ObjectExists(ctx, "health")
			return err
		}
		log.Info("Object storage ready", zap.String("bucket", s3Storage.GetBucket()))
	}

	// Event bus; the notification feed follows meeting events
	eventBus := event.NewInMemoryEventBus(log)
	feedHandler := notificationapp.NewMeetingEventHandler(regs.Notifications, log)
	eventBus.Subscribe(feedHandler, feedHandler.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Minutes delivery
	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Chrome.Timeout,
		RemoteURL:      cfg.Chrome.RemoteURL,
		NoSandbox:      cfg.Chrome.NoSandbox,
		Logger:         log,
	})
	if err != nil {
		log.Fatal("Failed to initialize PDF renderer", zap.Error(err))
	}
	defer func() {
		if err := renderer.Close(); err != nil {
			log.Error("Error closing PDF renderer", zap.Error(err))
		}
	}()

	mailSettings := minutes.NewSettingsStore(minutes.SettingsFromConfig(cfg.Mail))
	emitter := minutes.NewEmitter(minutes.EmitterDeps{
		Directory: regs.Participants,
		Settings:  mailSettings,
		Sender:    mail.NewSMTPSender(cfg.Mail.NotifyTimeout, log),
		Renderer:  renderer,
		Templates: printing.NewTemplateEngine(),
		Archive:   archive,
		Metrics:   metrics,
		Logger:    log,
		BaseURL:   cfg.App.BaseURL,
	})

	// Application services
	deps := meetingapp.Deps{
		Repo:      regs.Meetings,
		Directory: regs.Participants,
		Locker:    locker,
		Events:    eventBus,
		Metrics:   metrics,
		Logger:    log,
		LockWait:  cfg.Redis.LockWait,
		Storage:   objects,
	}
	meetingService := meetingapp.NewService(deps)
	lifecycleService := meetingapp.NewLifecycleService(deps, emitter, cfg.Mail.NotifyTimeout)
	itemService := meetingapp.NewItemService(deps, cfg.ObjectStorage.PresignTTL)
	participantService := identityapp.NewParticipantService(regs.Participants, log)
	feedService := notificationapp.NewFeedService(regs.Notifications, regs.Participants, log)
	mailService := minutes.NewMailService(regs.Meetings, regs.Participants, mailSettings, emitter, log)
	authService := identityapp.NewAuthService(regs.Participants, auth.NewJWTService(cfg.JWT), revocations, log)

	// Reminder job
	if cfg.Scheduler.Enabled {
		jobs := scheduler.NewScheduler(scheduler.SchedulerConfig{
			Enabled:    cfg.Scheduler.Enabled,
			JobTimeout: cfg.Scheduler.JobTimeout,
		}, log)
		reminder := minutes.NewReminderJob(regs.Meetings, emitter, metrics, log)
		if err := jobs.Register(cfg.Scheduler.ReminderCron, reminder); err != nil {
			log.Fatal("Failed to register reminder job", zap.Error(err))
		}
		if err := jobs.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer func() {
			if err := jobs.Stop(context.Background()); err != nil {
				log.Error("Error stopping scheduler", zap.Error(err))
			}
		}()
		log.Info("Scheduler started",
			zap.String("reminder_cron", cfg.Scheduler.ReminderCron),
			zap.Duration("job_timeout", cfg.Scheduler.JobTimeout),
		)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	// Middleware chain: request id first so every log line and error carries it
	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.HTTPMetrics(metrics),
	)
	if profiler.IsEnabled() {
		engine.Use(middleware.ProfilingWithConfig(middleware.DefaultProfilingConfig()))
	}

	systemHandler := handler.NewSystemHandler(version, checks)
	engine.GET("/health", systemHandler.Health)
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))
	}

	// Swagger documentation endpoint
	swaggerConfig := middleware.SwaggerConfig{
		Enabled:     cfg.Swagger.Enabled,
		RequireAuth: cfg.Swagger.RequireAuth,
		AllowedIPs:  cfg.Swagger.AllowedIPs,
	}
	engine.GET("/swagger/*any", append(middleware.SwaggerGuards(swaggerConfig, authService, log),
		ginSwagger.WrapHandler(swaggerFiles.Handler))...)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(
		middleware.Caller(authService, log),
		middleware.TracingAttributeInjector(),
	)
	if cfg.HTTP.RateLimitEnabled {
		r.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst), metrics))
	}

	apiHandlers := router.APIHandlers{
		Meetings:      handler.NewMeetingHandler(meetingService, lifecycleService),
		Items:         handler.NewItemHandler(itemService),
		Participants:  handler.NewParticipantHandler(participantService),
		Notifications: handler.NewNotificationHandler(feedService),
		Email:         handler.NewEmailHandler(mailService),
	}
	if authService.Enabled() {
		apiHandlers.Auth = handler.NewAuthHandler(authService)
	}
	router.RegisterAPI(r, apiHandlers)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("storage", cfg.Storage.Driver),
			zap.Bool("auth", authService.Enabled()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// redisCheck pings redis for /health
func redisCheck(client redis.UniversalClient) handler.HealthCheck {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}
