package service

import (
	"net/http"

	"github.com/Suhaibinator/SFilter/pkg/middleware"
	"github.com/Suhaibinator/SFilter/pkg/reply"
	"go.uber.org/zap"
)

// Handler serves svc over net/http. It waits for the service to become ready
// using the request context and answers 503 if readiness fails or the client
// goes away first. A nil logger disables logging.
func Handler(svc Service[*reply.Response, Infallible], logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ready(r.Context()); err != nil {
			logger.Warn("Service not ready",
				zap.Error(err),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
			return
		}

		// The error is Infallible and therefore always nil.
		resp, _ := svc.Call(r)
		if resp == nil {
			resp = reply.Empty()
		}

		if err := reply.Write(w, resp); err != nil {
			fields := []zap.Field{
				zap.Error(err),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			}
			if traceID := middleware.GetTraceID(r); traceID != "" {
				fields = append([]zap.Field{zap.String("trace_id", traceID)}, fields...)
			}
			logger.Error("Failed to write response", fields...)
		}
	})
}
