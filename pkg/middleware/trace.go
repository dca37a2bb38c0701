package middleware

import (
	"net/http"

	"github.com/Suhaibinator/SFilter/pkg/common"
	"github.com/Suhaibinator/SFilter/pkg/store"
	"github.com/google/uuid"
)

// TraceIDHeader is the header used to propagate trace IDs.
const TraceIDHeader = "X-Trace-ID"

// traceIDKey is the LazyReqStore key for the request's trace ID.
type traceIDKey struct{}

// TraceMiddleware creates a middleware that assigns a trace ID to each request.
// An incoming X-Trace-ID header is reused; otherwise a new UUID is generated.
// The ID is recorded in the request's LazyReqStore and echoed in the response.
func TraceMiddleware() common.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.New().String()
			}

			r = AddTraceIDToRequest(r, traceID)
			w.Header().Set(TraceIDHeader, traceID)

			next.ServeHTTP(w, r)
		})
	}
}

// AddTraceIDToRequest records traceID in the request's store, attaching a
// store first if needed.
func AddTraceIDToRequest(r *http.Request, traceID string) *http.Request {
	r = store.Ensure(r)
	s, _ := store.FromRequest(r)
	s.Set(traceIDKey{}, traceID)
	return r
}

// GetTraceID returns the trace ID of the request, or "" if none was assigned.
func GetTraceID(r *http.Request) string {
	s, _ := store.FromRequest(r)
	traceID, _ := store.Value[string](s, traceIDKey{})
	return traceID
}
