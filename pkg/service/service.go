// Package service adapts request filters to a generic request-handling
// service and guarantees that every request reaching a service built here
// carries a LazyReqStore.
package service

import (
	"context"
	"net/http"

	"github.com/Suhaibinator/SFilter/pkg/filter"
	"github.com/Suhaibinator/SFilter/pkg/reply"
	"github.com/Suhaibinator/SFilter/pkg/store"
)

// Service is a request handler that reports readiness separately from
// handling. Implementations must be safe for concurrent use.
type Service[Resp any, Err error] interface {
	// Ready blocks until the service can accept a request. It returns nil
	// when the service is ready, ctx.Err() when ctx ends first, and any
	// other error when the service has failed.
	Ready(ctx context.Context) error

	// Call handles a single request.
	Call(r *http.Request) (Resp, Err)
}

// Func adapts a function into a Service that is always ready.
type Func[Resp any, Err error] func(r *http.Request) (Resp, Err)

// Ready implements Service; a Func is always ready.
func (f Func[Resp, Err]) Ready(context.Context) error {
	return nil
}

// Call implements Service by calling f(r).
func (f Func[Resp, Err]) Call(r *http.Request) (Resp, Err) {
	return f(r)
}

// Infallible is the error type of services that cannot fail. No type
// implements it, so the only value it can hold is nil.
type Infallible interface {
	error
	infallible()
}

// StoreService wraps a service and attaches an empty LazyReqStore to every
// request that does not already carry one before delegating to it. It adds
// nothing else: readiness and results are those of the inner service.
type StoreService[Resp any, Err error] struct {
	service Service[Resp, Err]
}

// New wraps service in a StoreService.
func New[Resp any, Err error](service Service[Resp, Err]) StoreService[Resp, Err] {
	return StoreService[Resp, Err]{service: service}
}

// Ready returns the readiness of the inner service unchanged.
func (s StoreService[Resp, Err]) Ready(ctx context.Context) error {
	return s.service.Ready(ctx)
}

// Call attaches a LazyReqStore to r if it has none and forwards the request
// to the inner service. A request that already carries a store is forwarded
// as is, so its store is never replaced.
func (s StoreService[Resp, Err]) Call(r *http.Request) (Resp, Err) {
	return s.service.Call(store.Ensure(r))
}

// FromFilter converts f into a Service and wraps it in a StoreService.
// Every filter served through this package must be built this way: it is
// what guarantees the LazyReqStore exists when the filter runs.
//
// The returned service never fails. Rejections are converted into error
// responses, so the Infallible error is always nil and every call yields a
// complete response.
func FromFilter(f filter.Filter) StoreService[*reply.Response, Infallible] {
	return New[*reply.Response, Infallible](Func[*reply.Response, Infallible](func(r *http.Request) (*reply.Response, Infallible) {
		return filter.Respond(f, r), nil
	}))
}
