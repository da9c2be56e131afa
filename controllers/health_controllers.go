package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-ops/store"
)

type HealthController struct {
	Store *store.Store
}

func NewHealthController(st *store.Store) *HealthController {
	return &HealthController{Store: st}
}

// Health reports database connectivity and round-trip latency.
func (hc *HealthController) Health(c *gin.Context) {
	latency, err := hc.Store.Ping()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"database":  "disconnected",
			"error":     err.Error(),
			"timestamp": time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"database":         "connected",
		"response_time_ms": float64(latency.Microseconds()) / 1000.0,
		"timestamp":        time.Now().Format(time.RFC3339),
	})
}
