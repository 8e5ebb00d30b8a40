package handlers

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"casedesk/internal/contextutil"
)

// HealthCheck probes one dependency. A failing Critical check makes the
// service unhealthy; any other failure only degrades it.
type HealthCheck struct {
	Name     string
	Critical bool
	Check    func(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	checks             []HealthCheck
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		checks:             checks,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP runs every check in parallel. It returns 200 OK when healthy or
// degraded and 503 Service Unavailable when a critical check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Create context with timeout for health checks
	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		checks   = make(map[string]string, len(h.checks))
		issues   []string
		critical bool
	)
	g, gctx := errgroup.WithContext(checkCtx)
	for _, c := range h.checks {
		g.Go(func() error {
			err := c.Check(gctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.WarnContext(ctx, "health check failed", "check", c.Name, "error", err)
				checks[c.Name] = "error"
				issues = append(issues, c.Name+"_unavailable")
				critical = critical || c.Critical
				return nil
			}
			checks[c.Name] = "ok"
			return nil
		})
	}
	_ = g.Wait()
	sort.Strings(issues)

	// Determine overall status
	status := "healthy"
	httpStatus := http.StatusOK
	switch {
	case critical:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	case len(issues) > 0:
		status = "degraded"
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}
