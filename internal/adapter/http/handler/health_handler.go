package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        *gorm.DB
	redis     *redis.Client
	upstreams map[string]string
}

// NewHealthHandler creates a new health handler. upstreams maps a pipeline stage
// ("classifier", "explainer") to the backend serving it and is reported as-is.
func NewHealthHandler(db *gorm.DB, redis *redis.Client, upstreams map[string]string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		redis:     redis,
		upstreams: upstreams,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
	Upstreams  map[string]string `json:"upstreams,omitempty"`
}

func (h *HealthHandler) pingDatabase(ctx context.Context) (string, bool) {
	if h.db == nil {
		return "not configured", true
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error(), false
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "error: " + err.Error(), false
	}
	return "ok", true
}

// pingRedis reports a degraded token cache without failing the check, since
// identity resolution falls back to the upstream resolver.
func (h *HealthHandler) pingRedis(ctx context.Context) string {
	if h.redis == nil {
		return "not configured"
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return "degraded: " + err.Error()
	}
	return "ok"
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	components := make(map[string]string)
	database, healthy := h.pingDatabase(ctx)
	components["database"] = database
	components["redis"] = h.pingRedis(ctx)

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:     status,
		Components: components,
		Upstreams:  h.upstreams,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if _, ok := h.pingDatabase(ctx); !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unreachable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
