// Package filter provides composable request filters. A filter inspects a
// request and either rejects it or produces a reply.
package filter

import (
	"errors"
	"net/http"

	"github.com/Suhaibinator/SFilter/pkg/reply"
)

// Filter extracts a reply from a request. A failed filter returns an error,
// normally a *Rejection, and a nil reply.
//
// Filters must be safe to call from multiple goroutines, since a single
// filter value serves every request of a server.
type Filter interface {
	Filter(r *http.Request) (reply.Reply, error)
}

// Func adapts an ordinary function to the Filter interface.
type Func func(r *http.Request) (reply.Reply, error)

// Filter calls f(r).
func (f Func) Filter(r *http.Request) (reply.Reply, error) {
	return f(r)
}

// Predicate checks a request without producing a reply. A non-nil error
// rejects the request.
type Predicate func(r *http.Request) error

// Guard returns a filter that runs every predicate in order before next.
// The first failing predicate rejects the request and next is not called.
func Guard(next Filter, preds ...Predicate) Filter {
	return Func(func(r *http.Request) (reply.Reply, error) {
		for _, pred := range preds {
			if err := pred(r); err != nil {
				return nil, err
			}
		}
		return next.Filter(r)
	})
}

// Map returns a filter that transforms the reply of f with fn. Rejections
// pass through unchanged.
func Map(f Filter, fn func(reply.Reply) reply.Reply) Filter {
	return Func(func(r *http.Request) (reply.Reply, error) {
		rep, err := f.Filter(r)
		if err != nil {
			return nil, err
		}
		return fn(rep), nil
	})
}

// Or returns a filter that tries each filter in order. A filter that rejects
// with 404 or 405 lets the next one try; any other outcome is returned as is.
// When every filter rejects, the 405 rejection wins over 404.
func Or(filters ...Filter) Filter {
	return Func(func(r *http.Request) (reply.Reply, error) {
		var best *Rejection
		for _, f := range filters {
			rep, err := f.Filter(r)
			if err == nil {
				return rep, nil
			}

			var rej *Rejection
			if !errors.As(err, &rej) || !rej.unmatched() {
				return nil, err
			}
			if best == nil || rej.StatusCode == http.StatusMethodNotAllowed {
				best = rej
			}
		}
		if best == nil {
			return nil, NotFound()
		}
		return nil, best
	})
}

// Respond runs f and converts the outcome into a response. It never fails:
// rejections and other errors become error responses, and a missing reply
// becomes an empty 200.
func Respond(f Filter, r *http.Request) *reply.Response {
	rep, err := f.Filter(r)
	if err != nil {
		return Recover(err)
	}
	if rep == nil {
		return reply.Empty()
	}
	if resp := rep.Into(); resp != nil {
		return resp
	}
	return reply.Empty()
}
