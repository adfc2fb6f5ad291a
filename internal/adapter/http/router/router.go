package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/http/handler"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/http/middleware"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/adapter/repository/postgres"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/domain/service"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/logger"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/infrastructure/metrics"
	"github.com/musfikur-rahaman/fake-news-detection-v1/internal/usecase"
)

// DetectAliasPath is the serverless-function style path of the detect endpoint
const DetectAliasPath = "/functions/v1/detect-fake-news"

// Dependencies are the collaborators the router wires into handlers
type Dependencies struct {
	DB           *gorm.DB
	Redis        *redis.Client
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	Classifier   service.Classifier
	Explainer    service.Explainer
	Resolver     service.IdentityResolver
	WriteTimeout time.Duration
}

// Setup creates and configures the Gin router
func Setup(deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Named(log, "http")))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(deps.Metrics))

	// Health endpoints
	upstreams := map[string]string{}
	if deps.Classifier != nil {
		upstreams["classifier"] = deps.Classifier.Name()
	}
	if deps.Explainer != nil {
		upstreams["explainer"] = deps.Explainer.Name()
	}
	healthHandler := handler.NewHealthHandler(deps.DB, deps.Redis, upstreams)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(metricsHandler(deps.Gatherer)))

	// Initialize repositories
	detectionRepo := postgres.NewDetectionRepository(deps.DB)

	// Initialize usecases
	detectionUC := usecase.NewDetectionUsecase(usecase.DetectionDeps{
		Classifier:   deps.Classifier,
		Explainer:    deps.Explainer,
		Resolver:     deps.Resolver,
		Repository:   detectionRepo,
		Metrics:      deps.Metrics,
		Logger:       logger.Named(log, "detection"),
		WriteTimeout: deps.WriteTimeout,
	})
	historyUC := usecase.NewHistoryUsecase(detectionRepo)

	// Initialize handlers
	detectionHandler := handler.NewDetectionHandler(detectionUC)
	historyHandler := handler.NewHistoryHandler(historyUC)

	// The pipeline authenticates after classification, so detect is not behind Auth
	router.POST(DetectAliasPath, detectionHandler.Detect)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/detect", detectionHandler.Detect)

		detections := v1.Group("/detections", middleware.Auth(deps.Resolver, logger.Named(log, "auth")))
		{
			detections.GET("", historyHandler.List)
			detections.GET("/export", historyHandler.Export)
			detections.GET("/:id", historyHandler.Get)
			detections.DELETE("/:id", historyHandler.Delete)
		}
	}

	return router
}

func metricsHandler(gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
