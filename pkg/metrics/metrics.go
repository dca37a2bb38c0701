// Package metrics instruments SFilter services with Prometheus metrics.
package metrics

import (
	"math/rand"
	"sync"
)

// Config defines which metrics are collected and where they are registered.
type Config struct {
	Namespace        string    // Namespace for metric names
	Subsystem        string    // Subsystem for metric names
	EnableLatency    bool      // Enable the request latency histogram
	EnableThroughput bool      // Enable the response size histogram
	EnableQPS        bool      // Enable the request counter
	EnableErrors     bool      // Enable the error counter (status >= 400)
	LatencyBuckets   []float64 // Latency buckets in seconds; defaults apply when empty
	SamplingRate     float64   // Fraction of requests to observe; 0 means all
}

// DefaultConfig returns a config with every metric enabled.
func DefaultConfig() Config {
	return Config{
		EnableLatency:    true,
		EnableThroughput: true,
		EnableQPS:        true,
		EnableErrors:     true,
	}
}

// Sampler decides whether a request is observed.
type Sampler interface {
	Sample() bool
}

// RandomSampler samples requests with a fixed probability.
type RandomSampler struct {
	rate float64
	mu   sync.Mutex
	rand *rand.Rand
}

// NewRandomSampler creates a sampler for the given rate in [0, 1].
func NewRandomSampler(rate float64) *RandomSampler {
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return &RandomSampler{rate: rate, rand: rand.New(rand.NewSource(rand.Int63()))}
}

// Sample implements Sampler.
func (s *RandomSampler) Sample() bool {
	if s.rate >= 1 {
		return true
	}
	if s.rate <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64() < s.rate
}
