package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"

	"github.com/Suhaibinator/SFilter/pkg/common"
	"github.com/Suhaibinator/SFilter/pkg/filter"
	"github.com/Suhaibinator/SFilter/pkg/metrics"
	"github.com/Suhaibinator/SFilter/pkg/middleware"
	"github.com/Suhaibinator/SFilter/pkg/reply"
	"github.com/Suhaibinator/SFilter/pkg/service"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Server serves one filter over HTTP. It implements http.Handler.
type Server struct {
	config     Config
	logger     *zap.Logger
	router     *httprouter.Router
	registry   *prometheus.Registry
	wg         sync.WaitGroup
	shutdown   bool
	shutdownMu sync.RWMutex
	httpMu     sync.Mutex
	httpServer *http.Server
}

// New creates a Server for f. The filter is converted with
// service.FromFilter, so every request it sees carries a LazyReqStore.
func New(config Config, f filter.Filter) (*Server, error) {
	logger := config.Logger
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			// Fallback to a no-op logger if we can't create a production logger
			logger = zap.NewNop()
		}
	}

	s := &Server{
		config: config,
		logger: logger,
		router: httprouter.New(),
	}

	// Filters see every path as sent; only the metrics endpoint is routed here
	s.router.RedirectTrailingSlash = false
	s.router.RedirectFixedPath = false
	s.router.HandleMethodNotAllowed = false

	var svc service.Service[*reply.Response, service.Infallible] = service.FromFilter(f)

	if config.EnableMetrics {
		s.registry = config.Registry
		if s.registry == nil {
			s.registry = prometheus.NewRegistry()
		}
		metricsConfig := metrics.DefaultConfig()
		if config.MetricsConfig != nil {
			metricsConfig = *config.MetricsConfig
		}
		collector, err := metrics.NewCollector(s.registry, metricsConfig)
		if err != nil {
			return nil, err
		}
		svc = metrics.Instrument[service.Infallible](svc, collector)
		s.router.Handler(http.MethodGet, config.metricsPath(), metrics.Handler(s.registry))
	}

	s.router.NotFound = s.wrapHandler(service.Handler(svc, logger))
	return s, nil
}

// wrapHandler applies the server middleware chain and in-flight tracking.
func (s *Server) wrapHandler(h http.Handler) http.Handler {
	chain := common.NewMiddlewareChain(
		middleware.Recovery(s.logger),
		middleware.ClientIPMiddleware(s.config.IPConfig),
	)
	if s.config.EnableTraceID {
		chain = chain.Append(middleware.TraceMiddleware())
	}
	chain = chain.Append(middleware.Logging(s.logger, s.config.EnableTraceID))
	chain = chain.Append(s.config.Middlewares...)

	inner := chain.Then(h)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// First add to the wait group before checking shutdown status
		s.wg.Add(1)
		defer s.wg.Done()

		s.shutdownMu.RLock()
		isShutdown := s.shutdown
		s.shutdownMu.RUnlock()

		if isShutdown {
			http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
			return
		}

		inner.ServeHTTP(w, r)
	})
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Registry returns the metrics registry, or nil when metrics are disabled.
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// newHTTPServer builds the underlying http.Server from the config.
func (s *Server) newHTTPServer() *http.Server {
	s.httpMu.Lock()
	defer s.httpMu.Unlock()

	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
		ErrorLog:          zap.NewStdLog(s.logger),
	}
	return s.httpServer
}

// ListenAndServe listens on Config.Addr and serves requests until Shutdown.
// It returns nil after a graceful shutdown.
func (s *Server) ListenAndServe() error {
	srv := s.newHTTPServer()
	s.logger.Info("Server listening", zap.String("addr", srv.Addr))
	return ignoreClosed(srv.ListenAndServe())
}

// Serve serves requests on l until Shutdown. It returns nil after a
// graceful shutdown.
func (s *Server) Serve(l net.Listener) error {
	srv := s.newHTTPServer()
	s.logger.Info("Server listening", zap.String("addr", l.Addr().String()))
	return ignoreClosed(srv.Serve(l))
}

// Shutdown gracefully shuts down the server.
// It stops accepting new requests and waits for existing requests to complete.
// If the context is canceled before all requests complete, it returns the context's error.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownMu.Lock()
	s.shutdown = true
	s.shutdownMu.Unlock()

	s.httpMu.Lock()
	srv := s.httpServer
	s.httpMu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Server stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
