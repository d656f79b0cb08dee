package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/erp_journal_engine/internal/middleware"
)

// HealthCheck probes one dependency.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// getHealth godoc
// @Summary Health check
// @Description Reports whether the service and its dependencies answer
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router /health [get]
func healthHandler(checks []HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for _, hc := range checks {
			if err := hc.Check(ctx); err != nil {
				middleware.GetLoggerFromContext(c).Warn("Health check failed",
					slog.String("dependency", hc.Name),
					slog.String("error", err.Error()))
				results[hc.Name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			results[hc.Name] = "ok"
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{"status": overall, "dependencies": results})
	}
}
