package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"menucraft/internal/caching"
	"menucraft/internal/services"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
	minioSvc services.MinioService
	started  time.Time
	version  string
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService, minioSvc services.MinioService, version string) *HealthHandlers {
	return &HealthHandlers{
		db:       db,
		cacheSvc: cacheSvc,
		minioSvc: minioSvc,
		started:  time.Now(),
		version:  version,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

// HealthCheck performs dependency health checks
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   h.version,
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}

	if err := h.checkDatabase(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.checkRedis(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}

	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	_, err := h.db.Exec(ctx, "SELECT 1")
	return err
}

func (h *HealthHandlers) checkRedis(ctx context.Context) error {
	// Round-trip a probe key; Redis being down degrades but never blocks
	// catalog reads, so this is informational.
	if err := h.cacheSvc.SetString(ctx, "menucraft:health:probe", "ok", 10*time.Second); err != nil {
		return err
	}
	_, err := h.cacheSvc.GetString(ctx, "menucraft:health:probe")
	return err
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.checkDatabase(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness probe)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// MetricsResponse represents application metrics
type MetricsResponse struct {
	Timestamp  time.Time              `json:"timestamp"`
	Metrics    map[string]interface{} `json:"metrics"`
	Version    string                 `json:"version"`
	Goroutines int                    `json:"goroutines"`
}

// GetMetrics provides application performance metrics
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	stat := h.db.Stat()
	metrics := &MetricsResponse{
		Timestamp:  time.Now().UTC(),
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
		Metrics: map[string]interface{}{
			"database_connections": map[string]interface{}{
				"max":      h.db.Config().MaxConns,
				"total":    stat.TotalConns(),
				"idle":     stat.IdleConns(),
				"acquired": stat.AcquiredConns(),
			},
			"application": map[string]interface{}{
				"version":    h.version,
				"start_time": h.started.Format(time.RFC3339),
			},
		},
	}

	return c.JSON(http.StatusOK, metrics)
}
