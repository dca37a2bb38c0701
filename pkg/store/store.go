// Package store provides LazyReqStore, a per-request value store that is
// attached to the request context and populated on demand.
package store

import (
	"context"
	"net/http"
	"sync"
)

// LazyReqStore is a per-request key/value store. Its backing map is allocated
// on the first Set, so an empty store costs a single small allocation.
// A LazyReqStore is safe for concurrent use.
type LazyReqStore struct {
	mu     sync.RWMutex
	values map[any]any
}

// Empty returns a new store with no values.
func Empty() *LazyReqStore {
	return &LazyReqStore{}
}

// IsEmpty reports whether the store holds no values.
func (s *LazyReqStore) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of values in the store.
func (s *LazyReqStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Get returns the value stored under key.
func (s *LazyReqStore) Get(key any) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *LazyReqStore) Set(key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[any]any)
	}
	s.values[key] = value
}

// Delete removes the value stored under key.
func (s *LazyReqStore) Delete(key any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Value returns the value stored under key if it has type T.
func Value[T any](s *LazyReqStore, key any) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// storeKey is the context key for the request's LazyReqStore.
type storeKey struct{}

// WithStore returns a copy of ctx carrying s.
func WithStore(ctx context.Context, s *LazyReqStore) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store carried by ctx, if any.
func FromContext(ctx context.Context) (*LazyReqStore, bool) {
	s, ok := ctx.Value(storeKey{}).(*LazyReqStore)
	return s, ok && s != nil
}

// FromRequest returns the store attached to r, if any.
func FromRequest(r *http.Request) (*LazyReqStore, bool) {
	return FromContext(r.Context())
}

// Exists reports whether r already carries a store.
func Exists(r *http.Request) bool {
	_, ok := FromRequest(r)
	return ok
}

// AttachToRequest returns a shallow copy of r whose context carries s.
func AttachToRequest(r *http.Request, s *LazyReqStore) *http.Request {
	return r.WithContext(WithStore(r.Context(), s))
}

// Ensure returns r unchanged when it already carries a store. Otherwise it
// returns a copy of r carrying a new empty store.
func Ensure(r *http.Request) *http.Request {
	if Exists(r) {
		return r
	}
	return AttachToRequest(r, Empty())
}
