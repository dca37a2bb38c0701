package store

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
)

// TestEmptyStore tests that a new store holds no values
func TestEmptyStore(t *testing.T) {
	s := Empty()
	if !s.IsEmpty() {
		t.Errorf("Expected new store to be empty")
	}
	if s.Len() != 0 {
		t.Errorf("Expected length 0, got %d", s.Len())
	}
	if _, ok := s.Get("missing"); ok {
		t.Errorf("Expected Get on empty store to report missing")
	}
}

// TestSetGetDelete tests basic store operations
func TestSetGetDelete(t *testing.T) {
	s := Empty()
	s.Set("marker", "X")

	if s.IsEmpty() {
		t.Errorf("Expected store to be non-empty after Set")
	}
	v, ok := s.Get("marker")
	if !ok || v != "X" {
		t.Errorf("Expected marker %q, got %v (ok=%v)", "X", v, ok)
	}

	s.Set("marker", "Y")
	if s.Len() != 1 {
		t.Errorf("Expected length 1 after overwrite, got %d", s.Len())
	}

	s.Delete("marker")
	if !s.IsEmpty() {
		t.Errorf("Expected store to be empty after Delete")
	}
}

// TestValue tests the typed accessor
func TestValue(t *testing.T) {
	s := Empty()
	s.Set("count", 3)

	n, ok := Value[int](s, "count")
	if !ok || n != 3 {
		t.Errorf("Expected 3, got %d (ok=%v)", n, ok)
	}

	if _, ok := Value[string](s, "count"); ok {
		t.Errorf("Expected type mismatch to report false")
	}

	if _, ok := Value[int](nil, "count"); ok {
		t.Errorf("Expected nil store to report false")
	}
}

// TestContextHelpers tests attaching and retrieving a store from a context
func TestContextHelpers(t *testing.T) {
	if _, ok := FromContext(context.Background()); ok {
		t.Errorf("Expected no store in background context")
	}

	s := Empty()
	ctx := WithStore(context.Background(), s)
	got, ok := FromContext(ctx)
	if !ok || got != s {
		t.Errorf("Expected the attached store to be returned")
	}

	if _, ok := FromContext(WithStore(context.Background(), nil)); ok {
		t.Errorf("Expected nil store to be treated as absent")
	}
}

// TestEnsureInsertsWhenMissing tests that Ensure attaches a fresh empty store
func TestEnsureInsertsWhenMissing(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if Exists(req) {
		t.Fatalf("Expected no store on a fresh request")
	}

	ensured := Ensure(req)
	s, ok := FromRequest(ensured)
	if !ok {
		t.Fatalf("Expected store to be present after Ensure")
	}
	if !s.IsEmpty() {
		t.Errorf("Expected inserted store to be empty")
	}
	if Exists(req) {
		t.Errorf("Expected original request to be left untouched")
	}
}

// TestEnsureKeepsExisting tests that Ensure never replaces an existing store
func TestEnsureKeepsExisting(t *testing.T) {
	s := Empty()
	s.Set("marker", "X")
	req := AttachToRequest(httptest.NewRequest("GET", "/", nil), s)

	ensured := Ensure(req)
	if ensured != req {
		t.Errorf("Expected Ensure to return the same request when a store exists")
	}
	got, _ := FromRequest(ensured)
	if got != s {
		t.Errorf("Expected the existing store instance to be kept")
	}
	if v, _ := got.Get("marker"); v != "X" {
		t.Errorf("Expected marker %q, got %v", "X", v)
	}
}

// TestConcurrentAccess tests that a store can be shared by goroutines of one request
func TestConcurrentAccess(t *testing.T) {
	s := Empty()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(i, i)
			s.Get(i)
		}(i)
	}
	wg.Wait()

	if s.Len() != 50 {
		t.Errorf("Expected 50 values, got %d", s.Len())
	}
}
