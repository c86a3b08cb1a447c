package observability

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger is anything with a connectivity check (the Redis cache repository).
type Pinger interface {
	Ping() error
}

// MetricsHandler provides the Prometheus scrape endpoint and health probes
type MetricsHandler struct {
	db    *sqlx.DB
	cache Pinger
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(db *sqlx.DB, cache Pinger) *MetricsHandler {
	return &MetricsHandler{db: db, cache: cache}
}

// MetricsEndpoint serves the default prometheus registry, where promauto
// registers all pkg/metrics collectors.
func (h *MetricsHandler) MetricsEndpoint() gin.HandlerFunc {
	handler := promhttp.Handler()
	return func(c *gin.Context) {
		handler.ServeHTTP(c.Writer, c.Request)
	}
}

// HealthEndpoint provides a basic health check
func (h *MetricsHandler) HealthEndpoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   "reviora-api",
			"timestamp": time.Now().Unix(),
		})
	}
}

// ReadinessEndpoint verifies the database and cache are reachable
func (h *MetricsHandler) ReadinessEndpoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.db != nil {
			if err := h.db.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "database unreachable"})
				return
			}
		}
		if h.cache != nil {
			if err := h.cache.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "cache unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// LivenessEndpoint provides a basic liveness check
func (h *MetricsHandler) LivenessEndpoint() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive"})
	}
}
