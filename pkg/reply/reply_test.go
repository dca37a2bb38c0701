package reply

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// TestText tests the Text constructor
func TestText(t *testing.T) {
	resp := Text("OK")
	if resp.Status() != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.Status())
	}
	if string(resp.Body) != "OK" {
		t.Errorf("Expected body %q, got %q", "OK", string(resp.Body))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Expected text content type, got %q", ct)
	}
}

// TestZeroStatusIsOK tests that a zero status code means 200
func TestZeroStatusIsOK(t *testing.T) {
	resp := &Response{}
	if resp.Status() != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.Status())
	}
}

// TestJSON tests the JSON constructor
func TestJSON(t *testing.T) {
	resp := JSON(map[string]string{"status": "ok"})
	if string(resp.Body) != `{"status":"ok"}` {
		t.Errorf("Expected JSON body, got %q", string(resp.Body))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected content type %q, got %q", "application/json", ct)
	}
}

// TestJSONEncodeFailure tests that encoding failures become 500 responses
func TestJSONEncodeFailure(t *testing.T) {
	resp := JSON[any](make(chan int))
	if resp.Status() != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, resp.Status())
	}
}

// TestProto tests the Proto constructor
func TestProto(t *testing.T) {
	resp := Proto(wrapperspb.String("hello"))
	if ct := resp.Header.Get("Content-Type"); ct != "application/x-protobuf" {
		t.Errorf("Expected protobuf content type, got %q", ct)
	}

	var decoded wrapperspb.StringValue
	if err := proto.Unmarshal(resp.Body, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal body: %v", err)
	}
	if decoded.GetValue() != "hello" {
		t.Errorf("Expected value %q, got %q", "hello", decoded.GetValue())
	}
}

// TestWithStatusAndHeader tests the reply modifiers
func TestWithStatusAndHeader(t *testing.T) {
	resp := WithHeader(WithStatus(Text("created"), http.StatusCreated), "X-Test", "value")
	if resp.Status() != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, resp.Status())
	}
	if resp.Header.Get("X-Test") != "value" {
		t.Errorf("Expected X-Test header %q, got %q", "value", resp.Header.Get("X-Test"))
	}

	bare := WithHeader(&Response{}, "X-Bare", "1")
	if bare.Header.Get("X-Bare") != "1" {
		t.Errorf("Expected header to be set on a response without headers")
	}
}

// TestWrite tests writing a response to a ResponseWriter
func TestWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := Write(rr, Error(http.StatusBadRequest, "Bad Request")); err != nil {
		t.Fatalf("Failed to write response: %v", err)
	}

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if rr.Body.String() != "Bad Request\n" {
		t.Errorf("Expected body %q, got %q", "Bad Request\n", rr.Body.String())
	}
	if rr.Header().Get("Content-Length") != "12" {
		t.Errorf("Expected Content-Length %q, got %q", "12", rr.Header().Get("Content-Length"))
	}
}

// TestWriteEmpty tests writing a response without a body
func TestWriteEmpty(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := Write(rr, WithStatus(Empty(), http.StatusNoContent)); err != nil {
		t.Fatalf("Failed to write response: %v", err)
	}
	if rr.Code != http.StatusNoContent {
		t.Errorf("Expected status code %d, got %d", http.StatusNoContent, rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("Expected empty body, got %q", rr.Body.String())
	}
}
