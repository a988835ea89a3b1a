package handlers

import (
	"context"
	"net/http"
	"runtime"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthCheckFunc probes one dependency
type HealthCheckFunc func(ctx context.Context) error

// HealthDependency is a named probe. Critical dependencies gate readiness.
type HealthDependency struct {
	Name     string
	Critical bool
	Check    HealthCheckFunc
}

// HealthHandlers reports on the service and its dependencies
type HealthHandlers struct {
	dependencies []HealthDependency
	jobNames     func() []string
	startedAt    time.Time
	version      string
	timeout      time.Duration
	logger       *zap.Logger
}

func NewHealthHandlers(version string, dependencies []HealthDependency, jobNames func() []string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{
		dependencies: dependencies,
		jobNames:     jobNames,
		startedAt:    time.Now(),
		version:      version,
		timeout:      3 * time.Second,
		logger:       logger,
	}
}

type HealthStatus struct {
	Status     string            `json:"status"`
	Timestamp  string            `json:"timestamp"`
	Services   map[string]string `json:"services"`
	Uptime     string            `json:"uptime"`
	Version    string            `json:"version"`
	Goroutines int               `json:"goroutines"`
	Jobs       []string          `json:"jobs,omitempty"`
}

// HealthCheck probes every dependency. A failing probe degrades the status
// and the response becomes 206.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	health := &HealthStatus{
		Status:     "healthy",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Services:   make(map[string]string, len(h.dependencies)),
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		Version:    h.version,
		Goroutines: runtime.NumGoroutine(),
	}
	if h.jobNames != nil {
		health.Jobs = h.jobNames()
	}

	for name, err := range h.probe(c.Request().Context(), false) {
		if err != nil {
			health.Services[name] = "unhealthy"
			health.Status = "degraded"
		} else {
			health.Services[name] = "healthy"
		}
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck fails with 503 while a critical dependency is down
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	var failing []string
	for name, err := range h.probe(c.Request().Context(), true) {
		if err != nil {
			failing = append(failing, name)
		}
	}
	if len(failing) > 0 {
		sort.Strings(failing)
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "not_ready",
			"message": "Critical services unavailable",
			"failing": failing,
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandlers) probe(ctx context.Context, criticalOnly bool) map[string]error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	results := make(map[string]error, len(h.dependencies))
	for _, dep := range h.dependencies {
		if criticalOnly && !dep.Critical {
			continue
		}
		err := dep.Check(ctx)
		if err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", dep.Name), zap.Error(err))
		}
		results[dep.Name] = err
	}
	return results
}
