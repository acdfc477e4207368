package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/skillwave/playback-gateway/internal/catalog"
	"github.com/skillwave/playback-gateway/internal/config"
	"github.com/skillwave/playback-gateway/internal/courseapi"
	"github.com/skillwave/playback-gateway/internal/enrollment"
	"github.com/skillwave/playback-gateway/internal/handlers"
	"github.com/skillwave/playback-gateway/internal/logger"
	"github.com/skillwave/playback-gateway/internal/metrics"
	"github.com/skillwave/playback-gateway/internal/middleware"
	"github.com/skillwave/playback-gateway/internal/playback"
	"github.com/skillwave/playback-gateway/internal/uploader"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const maxRequestSize = 2 * 1024 * 1024 * 1024 // 2GB for raw video uploads

const sessionSweepInterval = 10 * time.Minute
const sessionMaxIdle = time.Hour

// @title Playback Gateway API
// @version 1.0
// @description Gateway for protected video-lesson playback: course/video merge, access resolution, signed-URL orchestration and the admin upload flow.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for admin video management
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Playback Gateway")

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	gatewayMetrics := metrics.New(registry)

	// Enrollment cache (written by the checkout flow, read-only here)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	// Backend client
	backendClient := courseapi.NewClient(cfg.Backend.BaseURL, logger.Logger)

	// Services
	catalogService := catalog.NewService(backendClient, logger.Logger)
	enrollmentService := enrollment.NewService(
		enrollment.NewRedisCache(redisClient),
		backendClient,
		logger.Logger,
	)

	// Playback pipeline: ordered strategies, first match wins
	resolver := playback.NewResolver([]playback.Strategy{
		playback.NewYouTubeStrategy(cfg.Playback.YouTubeRequiresEnrollment),
		playback.NewBunnyStrategy(backendClient, cfg.Bunny.EmbedBaseURL, cfg.Bunny.DefaultLibraryID, logger.Logger),
		playback.NewDirectURLStrategy(),
	}, logger.Logger, gatewayMetrics)
	sessionManager := playback.NewManager(resolver, logger.Logger, gatewayMetrics)

	// Upload flow
	bunnyClient := uploader.NewBunnyClient(cfg.Bunny.UploadBaseURL, cfg.Bunny.APIKey, logger.Logger)
	uploadService := uploader.NewService(backendClient, bunnyClient, logger.Logger, gatewayMetrics)

	// Handlers
	learnHandler := handlers.NewLearnHandler(
		catalogService,
		enrollmentService,
		sessionManager,
		logger.Logger,
		cfg.Playback.TrialLessonCount,
		cfg.Backend.SalesPageURL,
	)
	videoHandler := handlers.NewVideoHandler(uploadService, logger.Logger)

	// Session sweeper
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go func() {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweeperCtx.Done():
				return
			case <-ticker.C:
				if removed := sessionManager.Sweep(sessionMaxIdle); removed > 0 {
					logger.Logger.Debug("swept idle playback sessions", zap.Int("removed", removed))
				}
			}
		}
	}()

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger.Logger))
	r.Use(middleware.Recovery(logger.Logger))
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimit(maxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Metrics and liveness
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		learnHandler.RegisterRoutes(r)

		// Admin video management requires the API key
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKey(cfg.APIKey))
			videoHandler.RegisterRoutes(r)
		})
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Minute, // raw video uploads run long
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}
