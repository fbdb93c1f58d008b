// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     health
// Description: Named health checks and the /healthz handler
// Author:      lwd-temp
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"
)

// Status represents the health status of a service
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// CheckResult represents the result of a health check
type CheckResult struct {
	Name     string                 `json:"name"`
	Status   Status                 `json:"status"`
	Message  string                 `json:"message,omitempty"`
	Duration time.Duration          `json:"duration"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// CheckFunc runs one health check
type CheckFunc func(ctx context.Context) CheckResult

// Registry runs named checks concurrently
type Registry struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	service string
	version string
	startAt time.Time
}

// NewRegistry creates a new health check registry
func NewRegistry(service, version string) *Registry {
	return &Registry{
		checks:  make(map[string]CheckFunc),
		service: service,
		version: version,
		startAt: time.Now(),
	}
}

// Register adds or replaces a named check
func (r *Registry) Register(name string, fn CheckFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checks[name] = fn
}

// Check runs all checks. The report lists results by name; one unhealthy
// check makes the service unhealthy, one degraded check degrades it.
func (r *Registry) Check(ctx context.Context) *Report {
	r.mu.RLock()
	checks := make(map[string]CheckFunc, len(r.checks))
	for name, fn := range r.checks {
		checks[name] = fn
	}
	r.mu.RUnlock()

	report := &Report{
		Service:   r.service,
		Version:   r.version,
		Status:    StatusHealthy,
		Uptime:    time.Since(r.startAt),
		Timestamp: time.Now(),
		Checks:    make([]CheckResult, 0, len(checks)),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for name, fn := range checks {
		wg.Add(1)
		go func(name string, fn CheckFunc) {
			defer wg.Done()
			start := time.Now()
			result := fn(ctx)
			result.Name = name
			result.Duration = time.Since(start)

			mu.Lock()
			report.Checks = append(report.Checks, result)
			mu.Unlock()
		}(name, fn)
	}
	wg.Wait()

	sort.Slice(report.Checks, func(i, j int) bool { return report.Checks[i].Name < report.Checks[j].Name })
	for _, result := range report.Checks {
		switch result.Status {
		case StatusUnhealthy:
			report.Status = StatusUnhealthy
		case StatusDegraded:
			if report.Status != StatusUnhealthy {
				report.Status = StatusDegraded
			}
		}
	}
	return report
}

// Report represents the overall health report
type Report struct {
	Service   string        `json:"service"`
	Version   string        `json:"version"`
	Status    Status        `json:"status"`
	Uptime    time.Duration `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// String returns a string representation of the report
func (r *Report) String() string {
	return fmt.Sprintf("Service: %s, Status: %s, Uptime: %v, Checks: %d",
		r.Service, r.Status, r.Uptime.Round(time.Second), len(r.Checks))
}

// Handler serves the registry: "ok" while not unhealthy, 503 otherwise.
// With ?format=json the full report is returned.
func (r *Registry) Handler(timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), timeout)
		defer cancel()

		report := r.Check(ctx)
		status := http.StatusOK
		if report.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		if req.URL.Query().Get("format") == "json" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(report)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte("ok"))
			return
		}
		_, _ = w.Write([]byte(report.Status))
	})
}
