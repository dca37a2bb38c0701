package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Suhaibinator/SFilter/pkg/filter"
	"github.com/Suhaibinator/SFilter/pkg/reply"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// unreadyService never becomes ready
type unreadyService struct {
	err error
}

func (s unreadyService) Ready(context.Context) error {
	return s.err
}

func (s unreadyService) Call(*http.Request) (*reply.Response, Infallible) {
	return reply.Text("unreachable"), nil
}

// TestHandlerServesFilter tests serving a filter service over net/http
func TestHandlerServesFilter(t *testing.T) {
	svc := FromFilter(filter.Func(func(*http.Request) (reply.Reply, error) {
		return reply.WithHeader(reply.Text("OK"), "X-Test", "yes"), nil
	}))

	rr := httptest.NewRecorder()
	Handler(svc, zap.NewNop()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, rr.Code)
	}
	if rr.Body.String() != "OK" {
		t.Errorf("Expected body %q, got %q", "OK", rr.Body.String())
	}
	if rr.Header().Get("X-Test") != "yes" {
		t.Errorf("Expected X-Test header %q, got %q", "yes", rr.Header().Get("X-Test"))
	}
}

// TestHandlerServesRejection tests that rejections are written as error responses
func TestHandlerServesRejection(t *testing.T) {
	svc := FromFilter(filter.Func(func(*http.Request) (reply.Reply, error) {
		return nil, filter.Reject(http.StatusUnprocessableEntity, "Invalid params")
	}))

	rr := httptest.NewRecorder()
	Handler(svc, nil).ServeHTTP(rr, httptest.NewRequest("POST", "/", nil))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status code %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	if rr.Body.String() != "Invalid params\n" {
		t.Errorf("Expected body %q, got %q", "Invalid params\n", rr.Body.String())
	}
}

// TestHandlerNotReady tests that readiness failures produce 503 and a log entry
func TestHandlerNotReady(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)

	svc := New[*reply.Response, Infallible](unreadyService{err: errors.New("warming up")})

	rr := httptest.NewRecorder()
	Handler(svc, zap.New(core)).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, rr.Code)
	}
	if logs.FilterMessage("Service not ready").Len() != 1 {
		t.Errorf("Expected one readiness log entry, got %d", logs.FilterMessage("Service not ready").Len())
	}
}

// TestHandlerNilResponse tests that a nil response is served as an empty 200
func TestHandlerNilResponse(t *testing.T) {
	svc := Func[*reply.Response, Infallible](func(*http.Request) (*reply.Response, Infallible) {
		return nil, nil
	})

	rr := httptest.NewRecorder()
	Handler(svc, nil).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, rr.Code)
	}
}
