package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Suhaibinator/SFilter/pkg/reply"
	"github.com/Suhaibinator/SFilter/pkg/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var defaultLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Collector holds the Prometheus metrics recorded for service calls.
// Disabled metrics are nil.
type Collector struct {
	sampler  Sampler
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	respSize *prometheus.HistogramVec
}

// NewCollector creates the metrics enabled in config and registers them with reg.
func NewCollector(reg prometheus.Registerer, config Config) (*Collector, error) {
	c := &Collector{sampler: NewRandomSampler(1)}
	if config.SamplingRate > 0 {
		c.sampler = NewRandomSampler(config.SamplingRate)
	}

	var collectors []prometheus.Collector
	if config.EnableQPS {
		c.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "status"})
		collectors = append(collectors, c.requests)
	}

	if config.EnableErrors {
		c.errors = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "http_errors_total",
			Help:      "Total number of HTTP errors",
		}, []string{"method", "status"})
		collectors = append(collectors, c.errors)
	}

	if config.EnableLatency {
		buckets := config.LatencyBuckets
		if len(buckets) == 0 {
			buckets = defaultLatencyBuckets
		}
		c.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   buckets,
		}, []string{"method"})
		collectors = append(collectors, c.latency)
	}

	if config.EnableThroughput {
		c.respSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: config.Subsystem,
			Name:      "http_response_size_bytes",
			Help:      "HTTP response size in bytes",
			Buckets:   []float64{100, 1000, 10000, 100000, 1000000},
		}, []string{"method"})
		collectors = append(collectors, c.respSize)
	}

	for _, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// observe records one completed call.
func (c *Collector) observe(method string, resp *reply.Response, duration time.Duration) {
	status := http.StatusOK
	size := 0
	if resp != nil {
		status = resp.Status()
		size = len(resp.Body)
	}
	code := strconv.Itoa(status)

	if c.requests != nil {
		c.requests.WithLabelValues(method, code).Inc()
	}
	if c.errors != nil && status >= 400 {
		c.errors.WithLabelValues(method, code).Inc()
	}
	if c.latency != nil {
		c.latency.WithLabelValues(method).Observe(duration.Seconds())
	}
	if c.respSize != nil {
		c.respSize.WithLabelValues(method).Observe(float64(size))
	}
}

// instrumented records metrics for every call to the wrapped service.
type instrumented[Err error] struct {
	service   service.Service[*reply.Response, Err]
	collector *Collector
}

// Instrument wraps svc so that each call is recorded by c. Readiness and
// results of svc are returned unchanged.
func Instrument[Err error](svc service.Service[*reply.Response, Err], c *Collector) service.Service[*reply.Response, Err] {
	return instrumented[Err]{service: svc, collector: c}
}

// Ready implements service.Service.
func (s instrumented[Err]) Ready(ctx context.Context) error {
	return s.service.Ready(ctx)
}

// Call implements service.Service.
func (s instrumented[Err]) Call(r *http.Request) (*reply.Response, Err) {
	if !s.collector.sampler.Sample() {
		return s.service.Call(r)
	}
	start := time.Now()
	resp, err := s.service.Call(r)
	s.collector.observe(r.Method, resp, time.Since(start))
	return resp, err
}

// Handler returns an HTTP handler exposing the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
