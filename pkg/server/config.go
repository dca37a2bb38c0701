// Package server serves a request filter over HTTP through the SFilter
// service adapter, with logging, tracing, metrics and graceful shutdown.
package server

import (
	"time"

	"github.com/Suhaibinator/SFilter/pkg/common"
	"github.com/Suhaibinator/SFilter/pkg/metrics"
	"github.com/Suhaibinator/SFilter/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultMetricsPath is the path metrics are served on when none is configured.
const DefaultMetricsPath = "/metrics"

// Config defines the configuration for a Server.
type Config struct {
	Addr              string               // TCP address for ListenAndServe, e.g. ":8080"
	Logger            *zap.Logger          // Logger for all server operations
	ReadHeaderTimeout time.Duration        // Passed to http.Server
	ReadTimeout       time.Duration        // Passed to http.Server
	WriteTimeout      time.Duration        // Passed to http.Server
	IdleTimeout       time.Duration        // Passed to http.Server
	IPConfig          *middleware.IPConfig // Configuration for client IP extraction
	EnableTraceID     bool                 // Assign trace IDs and include them in logs
	EnableMetrics     bool                 // Collect Prometheus metrics and expose them
	MetricsPath       string               // Path metrics are exposed on (default "/metrics")
	MetricsConfig     *metrics.Config      // Which metrics to collect (default: all)
	Registry          *prometheus.Registry // Registry for metrics (default: a new registry)
	Middlewares       []common.Middleware  // Middlewares applied to every filter request
}

// metricsPath returns the effective metrics path.
func (c Config) metricsPath() string {
	if c.MetricsPath == "" {
		return DefaultMetricsPath
	}
	return c.MetricsPath
}
