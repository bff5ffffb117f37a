package handler

import (
	"context"
	"net/http"
	"time"

	"notebook/utils"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	deps    map[string]Pinger
	started time.Time
	timeout time.Duration
}

func NewHealthHandler(deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{deps: deps, started: time.Now(), timeout: 2 * time.Second}
}

// Health reports 200 when every dependency answers and 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	checks := make(gin.H, len(h.deps))
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "up"
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"status":  http.StatusText(status),
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"checks":  checks,
		"system":  utils.GetSystemUsage(ctx),
	})
}
