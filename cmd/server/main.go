// LocalLoop API server.
//
// @title           LocalLoop API
// @version         1.0
// @description     Local events marketplace: discover, join and organize neighborhood activities.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT access token.
package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	_ "github.com/localloop/backend/docs"
	catalogapp "github.com/localloop/backend/internal/application/catalog"
	identityapp "github.com/localloop/backend/internal/application/identity"
	preferenceapp "github.com/localloop/backend/internal/application/preference"
	"github.com/localloop/backend/internal/application/recommendation"
	"github.com/localloop/backend/internal/infrastructure/auth"
	"github.com/localloop/backend/internal/infrastructure/cache"
	"github.com/localloop/backend/internal/infrastructure/config"
	"github.com/localloop/backend/internal/infrastructure/event"
	"github.com/localloop/backend/internal/infrastructure/logger"
	"github.com/localloop/backend/internal/infrastructure/persistence"
	"github.com/localloop/backend/internal/infrastructure/scheduler"
	"github.com/localloop/backend/internal/infrastructure/telemetry"
	"github.com/localloop/backend/internal/interfaces/http/handler"
	"github.com/localloop/backend/internal/interfaces/http/middleware"
	"github.com/localloop/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting LocalLoop API server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	ctx := context.Background()

	// Telemetry providers come up before the database so GORM tracing and
	// metrics plugins can be registered on the fresh connection.
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:    true,
			LogFullSQL: cfg.Telemetry.DBLogFullSQL,
			DBName:     cfg.Database.DBName,
		}, log); err != nil {
			log.Error("Failed to register database tracing", zap.Error(err))
		}
	}

	var dbMetrics *telemetry.DBMetrics
	if meterProvider.IsEnabled() {
		dbMetricsCfg := telemetry.DefaultDBMetricsConfig()
		if cfg.Telemetry.DBSlowQueryThresh > 0 {
			dbMetricsCfg.SlowQueryThreshold = cfg.Telemetry.DBSlowQueryThresh
		}
		dbMetrics, err = telemetry.RegisterDBMetrics(db.DB, meterProvider, dbMetricsCfg, log)
		if err != nil {
			log.Error("Failed to register database metrics", zap.Error(err))
		}
	}

	// Redis backs both the recommendation cache and token revocation. When it
	// is unreachable both degrade to in-process implementations.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	var tokenRevoker auth.TokenRevoker
	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Warn("Redis unavailable, using in-memory token revocation", zap.Error(err))
		tokenRevoker = auth.NewInMemoryTokenRevoker()
	} else {
		tokenRevoker = auth.NewRedisTokenRevoker(redisClient)
	}
	cancelPing()

	// Repositories
	eventRepo := persistence.NewGormEventRepository(db.DB)
	preferenceRepo := persistence.NewGormPreferenceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Recommendation result cache
	var recommendCache recommendation.ResultCache
	if cfg.Recommend.CacheEnabled {
		recommendCache, err = cache.NewRecommendationCacheFactory(
			cfg.Redis,
			cfg.Recommend.CacheTTL,
			cache.WithCacheLogger(log),
			cache.WithInMemoryFallback(),
		).CreateCache()
		if err != nil {
			log.Fatal("Failed to create recommendation cache", zap.Error(err))
		}
	}

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	preferenceService := preferenceapp.NewService(preferenceRepo, recommendCache)

	var recommendOpts []recommendation.ServiceOption
	if meterProvider.IsEnabled() {
		recMetrics, err := telemetry.NewRecommendationMetrics(meterProvider.Meter("localloop/recommendation"))
		if err != nil {
			log.Error("Failed to create recommendation metrics", zap.Error(err))
		} else {
			recommendOpts = append(recommendOpts, recommendation.WithObserver(recMetrics))
		}
	}
	recommendService := recommendation.NewService(preferenceRepo, eventRepo, recommendCache, recommendOpts...)

	// Background sweep that completes past-dated events once a day.
	sweepScheduler := scheduler.NewScheduler(
		scheduler.DefaultSchedulerConfig(),
		scheduler.NewCompletionExecutor(eventRepo, log),
		log)
	if err := sweepScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start scheduler", zap.Error(err))
	}
	sweepTrigger := scheduler.NewDailyTrigger(scheduler.DefaultDailyTriggerConfig(), sweepScheduler, log)
	if err := sweepTrigger.Start(ctx); err != nil {
		log.Fatal("Failed to start sweep trigger", zap.Error(err))
	}

	// Domain event bus with the activity log as its default subscriber.
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewActivityLogHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	authService := identityapp.NewAuthService(userRepo, jwtService, tokenRevoker, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo, jwtService, preferenceService, log,
		identityapp.WithUserEventPublisher(eventBus))
	eventService := catalogapp.NewEventService(eventRepo, userRepo,
		catalogapp.WithEventPublisher(eventBus))
	dashboardService := catalogapp.NewDashboardService(eventRepo)

	// Handlers
	var eventHandlerOpts []handler.EventHandlerOption
	if meterProvider.IsEnabled() {
		catalogMetrics, err := telemetry.NewCatalogMetrics(meterProvider.Meter("localloop/catalog"))
		if err != nil {
			log.Error("Failed to create catalog metrics", zap.Error(err))
		} else {
			eventHandlerOpts = append(eventHandlerOpts, handler.WithCatalogMetrics(catalogMetrics))
		}
	}

	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService, eventHandlerOpts...)
	recommendationHandler := handler.NewRecommendationHandler(recommendService)
	preferenceHandler := handler.NewPreferenceHandler(preferenceService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	categoryHandler := handler.NewCategoryHandler()
	systemHandler := handler.NewSystemHandler(db.DB)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal("Failed to register request validators", zap.Error(err))
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
		engine.Use(middleware.HTTPMetrics(meterProvider))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: cfg.HTTP.CORSAllowMethods,
		AllowHeaders: cfg.HTTP.CORSAllowHeaders,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	engine.GET("/health", systemHandler.Health)

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Revoker = tokenRevoker
	jwtConfig.Logger = log
	jwtMiddleware := middleware.JWTAuthWithConfig(jwtConfig)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtMiddleware),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	engine.Use(jwtMiddleware)

	authGroup := router.NewDomainGroup("auth", "/auth").
		POST("/register", authHandler.Register).
		POST("/login", authHandler.Login).
		POST("/refresh", authHandler.Refresh).
		POST("/logout", authHandler.Logout).
		GET("/me", authHandler.Me).
		PUT("/password", authHandler.ChangePassword)
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		authGroup.Use(middleware.RateLimit(authLimiter))
	}

	eventGroup := router.NewDomainGroup("events", "/events").
		GET("", eventHandler.List).
		POST("", eventHandler.Create).
		GET("/recommended", recommendationHandler.Recommended).
		GET("/:id", eventHandler.GetByID).
		PUT("/:id", eventHandler.Update).
		POST("/:id/cancel", eventHandler.Cancel).
		POST("/:id/complete", eventHandler.Complete).
		POST("/:id/join", eventHandler.Join).
		DELETE("/:id/leave", eventHandler.Leave).
		GET("/:id/attendees", eventHandler.Attendees).
		GET("/:id/reviews", eventHandler.ListReviews).
		POST("/:id/reviews", eventHandler.CreateReview)

	userGroup := router.NewDomainGroup("user", "/user").
		GET("", userHandler.GetProfile).
		PUT("", userHandler.UpdateProfile).
		GET("/preferences", preferenceHandler.Get).
		PUT("/preferences", preferenceHandler.Update)

	organizerGroup := router.NewDomainGroup("organizer", "/organizer").
		Use(middleware.RequireOrganizer()).
		GET("/dashboard", dashboardHandler.Overview).
		GET("/attendees", dashboardHandler.Attendees)

	categoryGroup := router.NewDomainGroup("categories", "/categories").
		GET("", categoryHandler.List)

	systemGroup := router.NewDomainGroup("system", "/system").
		GET("/ping", systemHandler.Ping).
		GET("/info", systemHandler.GetSystemInfo)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(authGroup).
		Register(eventGroup).
		Register(userGroup).
		Register(organizerGroup).
		Register(categoryGroup).
		Register(systemGroup).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := sweepTrigger.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping sweep trigger", zap.Error(err))
	}
	if err := sweepScheduler.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping scheduler", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if dbMetrics != nil {
		dbMetrics.Stop()
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis client", zap.Error(err))
	}

	log.Info("Server exited")
}
