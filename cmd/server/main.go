package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appaudio "github.com/audiozoom/backend/internal/application/audiorequest"
	appfinance "github.com/audiozoom/backend/internal/application/finance"
	appidentity "github.com/audiozoom/backend/internal/application/identity"
	appmessaging "github.com/audiozoom/backend/internal/application/messaging"
	apprecording "github.com/audiozoom/backend/internal/application/recording"
	apprequest "github.com/audiozoom/backend/internal/application/request"
	"github.com/audiozoom/backend/internal/domain/finance"
	"github.com/audiozoom/backend/internal/domain/shared"
	"github.com/audiozoom/backend/internal/infrastructure/auth"
	"github.com/audiozoom/backend/internal/infrastructure/billing"
	"github.com/audiozoom/backend/internal/infrastructure/cache"
	"github.com/audiozoom/backend/internal/infrastructure/config"
	"github.com/audiozoom/backend/internal/infrastructure/event"
	"github.com/audiozoom/backend/internal/infrastructure/logger"
	"github.com/audiozoom/backend/internal/infrastructure/media"
	"github.com/audiozoom/backend/internal/infrastructure/payment"
	"github.com/audiozoom/backend/internal/infrastructure/scheduler"
	"github.com/audiozoom/backend/internal/infrastructure/storage"
	"github.com/audiozoom/backend/internal/infrastructure/telemetry"
	"github.com/audiozoom/backend/internal/interfaces/http/handler"
	"github.com/audiozoom/backend/internal/interfaces/http/middleware"
	"github.com/audiozoom/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/audiozoom/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

// maxJSONBody caps non-multipart request bodies
const maxJSONBody = 1 << 20

//	@title			AudioZoom API
//	@version		1.0
//	@description	Creator and fan audio marketplace: recordings, paid audio requests, payments and messaging.

//	@contact.name	API Support
//	@contact.email	support@audiozoom.example.com

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:5000
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Service: cfg.Telemetry.ServiceName,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()

	// Telemetry: traces, log export and continuous profiling
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer shutdownWithTimeout(log, "tracer provider", tracerProvider.Shutdown)

	logProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	defer shutdownWithTimeout(log, "log exporter", logProvider.Shutdown)
	log = logger.Tee(log, logProvider.Core(zapcore.InfoLevel))

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Warn("Failed to start profiler", zap.Error(err))
	} else {
		defer func() {
			if err := profiler.Stop(); err != nil {
				log.Error("Error stopping profiler", zap.Error(err))
			}
		}()
		if profiler.IsEnabled() && cfg.Telemetry.SpanProfiles {
			tracerProvider.EnableSpanProfiles()
		}
	}

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(cfg.Metrics.Namespace)
	}

	log.Info("Starting AudioZoom backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", Version),
	)

	// Persistence
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer shutdownWithTimeout(log, "database", repos.close)

	// Redis is optional; without it idempotency keys and revoked tokens are per-instance
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
	}
	var stores *cache.Stores
	if redisClient != nil {
		stores = cache.NewStores(redisClient, log)
	} else {
		stores = cache.NewStores(nil, log)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("Error closing stores", zap.Error(err))
		}
	}()

	// Object storage
	objectStorage, err := newObjectStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Payment providers; a disabled provider stays a nil interface
	var stripeGateway finance.StripeGateway
	if cfg.Stripe.Enabled {
		adapter, err := billing.NewStripeConnectAdapter(cfg.Stripe, log)
		if err != nil {
			log.Fatal("Failed to initialize Stripe", zap.Error(err))
		}
		stripeGateway = adapter
		log.Info("Stripe enabled", zap.Bool("test_mode", billing.IsTestKey(cfg.Stripe.SecretKey)))
	}
	var paypalGateway finance.PayPalGateway
	if cfg.PayPal.Enabled {
		adapter, err := payment.NewPayPalAdapter(cfg.PayPal, log)
		if err != nil {
			log.Fatal("Failed to initialize PayPal", zap.Error(err))
		}
		paypalGateway = adapter
		log.Info("PayPal enabled", zap.String("base_url", cfg.PayPal.BaseURL))
	}

	var googleVerifier auth.GoogleVerifier
	if cfg.Google.ClientID != "" {
		googleVerifier = auth.NewIDTokenVerifier(cfg.Google.ClientID)
	}

	var prober appaudio.DurationProber
	if ffprobe := media.NewFFProbe(cfg.Media, log); ffprobe.Enabled() {
		prober = ffprobe
	}

	// Event bus: audio request lifecycle events become inbox messages
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())
	notifier := appaudio.NewMessageNotifier(repos.messages, stores.Idempotency, log)
	eventBus.Subscribe(notifier)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	log.Info("Event handlers registered", zap.Strings("message_notifier_events", notifier.EventTypes()))

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(repos.users, jwtService, stores.Blacklist, googleVerifier, eventBus, log)
	profileService := appidentity.NewProfileService(repos.users, repos.recordings, objectStorage, eventBus, metrics, log)
	recordingService := apprecording.NewRecordingService(repos.recordings, repos.users, repos.messages, objectStorage, eventBus, metrics, log)
	audioService := appaudio.NewAudioRequestService(repos.audioRequests, repos.users, objectStorage, prober, eventBus, metrics, log)
	paymentService := appfinance.NewPaymentService(repos.payments, repos.users, stripeGateway, paypalGateway,
		appfinance.PaymentOptions{
			ClientURL:      cfg.App.ClientURL,
			DefaultCountry: cfg.Stripe.DefaultCountry,
			Currency:       cfg.Stripe.Currency,
		}, eventBus, metrics, log)
	webhookService := appfinance.NewWebhookService(repos.payments, repos.audioRequests, stripeGateway, paypalGateway,
		stores.Idempotency, eventBus, metrics, log)
	revenueService := appfinance.NewRevenueService(repos.revenue, log)
	messageService := appmessaging.NewMessageService(repos.messages, repos.users, eventBus, log)
	requestService := apprequest.NewRequestService(repos.requests, repos.users, log)

	// Background jobs
	if cfg.Scheduler.Enabled {
		jobs := scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, log, scheduler.WithObserver(metrics))
		if err := jobs.Register(cfg.Scheduler.StalePaymentSchedule,
			scheduler.NewStalePaymentSweeper(repos.payments, eventBus, cfg.Payments.PendingTTL, log)); err != nil {
			log.Fatal("Failed to register job", zap.Error(err))
		}
		if err := jobs.Register(cfg.Scheduler.OverdueRequestSchedule,
			scheduler.NewOverdueRequestReporter(repos.audioRequests, metrics, log)); err != nil {
			log.Fatal("Failed to register job", zap.Error(err))
		}
		if err := jobs.Start(ctx); err != nil {
			log.Fatal("Failed to start scheduler", zap.Error(err))
		}
		defer shutdownWithTimeout(log, "scheduler", jobs.Stop)
	}

	// Readiness checks
	checks := map[string]handler.HealthCheck{
		"database": repos.ping,
	}
	if redisClient != nil {
		checks["cache"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}
	if pinger, ok := objectStorage.(interface{ Ping(context.Context) error }); ok {
		checks["storage"] = pinger.Ping
	}

	// HTTP handlers
	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg.Cookie),
		User:         handler.NewUserHandler(profileService, cfg.Uploads.MaxImageSize),
		Recording:    handler.NewRecordingHandler(recordingService, cfg.Uploads.MaxAudioSize, cfg.Uploads.MaxImageSize),
		AudioRequest: handler.NewAudioRequestHandler(audioService, cfg.Uploads.MaxAudioSize),
		Payment:      handler.NewPaymentHandler(paymentService, webhookService),
		Message:      handler.NewMessageHandler(messageService),
		Request:      handler.NewRequestHandler(requestService),
		Admin:        handler.NewAdminHandler(revenueService),
		System:       handler.NewSystemHandler(cfg.App.Name, Version, checks),
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first:
	// 1. Recovery - Catch panics
	// 2. RequestID - Generate/propagate request ID
	// 3. Tracing - otelgin server span
	// 4. Logger - Log requests
	// 5. Metrics - Prometheus request metrics
	// 6. Security - Add security headers
	// 7. CORS - Handle cross-origin requests
	// 8. BodyLimit - Limit request body size
	// 9. RateLimit - Apply rate limiting (if enabled)
	// 10. Profiling - Pyroscope labels
	probePaths := []string{"/health", "/ready", cfg.Metrics.Path}
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
		SkipPaths:   probePaths,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(logger.GinMiddleware(log, probePaths...))
	engine.Use(middleware.HTTPMetrics(metrics, probePaths...))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimitWithMultipart(maxJSONBody, cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Close()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}
	var authRateLimit gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer limiter.Close()
		authRateLimit = middleware.RateLimit(limiter)
	}

	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   profiler != nil && profiler.IsEnabled(),
		SkipPaths: probePaths,
	}))

	// JWT authentication for protected routes. The account is re-read on
	// every request so deleted users and admin changes apply immediately.
	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = stores.Blacklist
	jwtConfig.CookieName = cfg.Cookie.Name
	jwtConfig.Logger = log
	jwtConfig.LookupUser = func(ctx context.Context, id uuid.UUID) (bool, error) {
		user, err := repos.users.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		return user.IsAdmin, nil
	}
	jwtAuth := middleware.JWTAuthMiddlewareWithConfig(jwtConfig)

	// Probes, metrics and documentation outside the API prefix
	router.RegisterProbes(engine, handlers.System)
	if metrics != nil {
		engine.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, jwtAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	r := router.NewRouter(engine, router.WithAuth(jwtAuth, middleware.TracingAttributeInjector()))
	groups := router.APIGroups(handlers, router.RouteMiddleware{
		AuthRateLimit:    authRateLimit,
		WebhookBodyLimit: middleware.BodyLimit(cfg.Uploads.MaxWebhookBody),
		OptionalAuth:     middleware.OptionalJWTAuthMiddleware(jwtConfig),
	})
	routeCount := 0
	for _, g := range groups {
		r.Register(g)
		routeCount += len(g.Routes())
	}
	r.Setup()
	log.Info("Routes registered", zap.Int("groups", len(groups)), zap.Int("routes", routeCount))

	// Create HTTP server
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
		log.Info("Server listening", zap.String("addr", srv.Addr))
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
	}

	log.Info("Server exited")
}

func newObjectStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (shared.ObjectStorage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn("Using in-memory object storage; uploads are lost on restart")
		baseURL := cfg.Storage.PublicBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:" + cfg.App.Port + "/files"
		}
		return storage.NewMemoryObjectStorage(baseURL), nil
	}
	return storage.NewS3ObjectStorage(ctx, &cfg.Storage, storage.WithLogger(log))
}

func shutdownWithTimeout(log *zap.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("Error shutting down "+name, zap.Error(err))
	}
}
