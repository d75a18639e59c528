package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Janushan11/scout-api/pkg/database"
	"github.com/Janushan11/scout-api/pkg/redis"
)

// HealthHandler reports process liveness and dependency readiness
type HealthHandler struct {
	db    *database.PostgresDB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler. The redis client may be nil
// when caching is disabled.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health is the liveness probe
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready is the readiness probe; it fails when a required dependency is down
// GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.db.HealthCheck(c.Request.Context()); err != nil {
		checks["postgres"] = "down"
		healthy = false
	} else {
		checks["postgres"] = "up"
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = "down"
			healthy = false
		} else {
			checks["redis"] = "up"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": checks})
}
