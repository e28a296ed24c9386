package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/feedbackhq/feedback-backend/config"
	"github.com/feedbackhq/feedback-backend/handlers"
	"github.com/feedbackhq/feedback-backend/internal/analytics"
	"github.com/feedbackhq/feedback-backend/internal/approval"
	"github.com/feedbackhq/feedback-backend/internal/store/mongodb"
	"github.com/feedbackhq/feedback-backend/logger"
	"github.com/feedbackhq/feedback-backend/middleware"
	"github.com/feedbackhq/feedback-backend/services"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.Connect(context.Background(), &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Errorw("Failed to disconnect from MongoDB", "error", err)
		}
	}()

	feedbackStore := mongodb.NewFeedbackStore(mongoClient.Database(cfg.Database.Name))

	// Initialize Redis client with TLS in production
	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS || cfg.Server.Environment == config.EnvProduction {
		redisOptions.TLSConfig = &tls.Config{
			ServerName: cfg.Redis.Address,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)

	// External collaborator clients
	approvalClient := approval.NewClient(cfg.Approval.URL,
		approval.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Approval.TimeoutSeconds) * time.Second,
		}))
	analyticsClient := analytics.NewClient(cfg.Analytics.URL,
		analytics.WithHTTPClient(&http.Client{
			Timeout: time.Duration(cfg.Analytics.TimeoutSeconds) * time.Second,
		}))

	// Initialize services
	emailService := services.NewEmailService(&cfg.Email)
	feedbackService := services.NewFeedbackService(feedbackStore, approvalClient, emailService)
	healthService := services.NewHealthService(mongoClient, redisClient, cfg.Server.Version)

	// Handlers
	feedbackHandler := handlers.NewFeedbackHandler(feedbackService, feedbackStore)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsClient)
	healthHandler := handlers.NewHealthHandler(healthService)

	// Router setup
	if cfg.Server.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(&cfg.Server))
	r.Use(middleware.ErrorHandler())

	// Versioned routes
	v1 := r.Group("/v1")
	{
		v1.POST("/feedback",
			middleware.SubmissionRateLimiter(
				redisClient,
				cfg.RateLimit.SubmissionsPerWindow,
				time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
			),
			feedbackHandler.SubmitFeedback,
		)
		v1.GET("/feedback", feedbackHandler.ListFeedback)
		v1.GET("/services", feedbackHandler.ListServices)

		v1.GET("/analytics", analyticsHandler.GetAnalysis)
		v1.GET("/analytics/services/:service", analyticsHandler.GetServiceAnalysis)
	}

	// Probes and metrics
	r.GET("/health/liveness", healthHandler.LivenessCheck)
	r.GET("/health/readiness", healthHandler.ReadinessCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Infof("Starting server on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
