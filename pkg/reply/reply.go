// Package reply defines HTTP replies produced by filters and the fully formed
// responses they convert into.
package reply

import (
	"net/http"
	"strconv"

	"github.com/Suhaibinator/SFilter/pkg/codec"
	"google.golang.org/protobuf/proto"
)

// Reply is any value that can be converted into a complete HTTP response.
type Reply interface {
	// Into converts the reply into a response. It must not return nil.
	Into() *Response
}

// Response is a fully formed HTTP response.
type Response struct {
	StatusCode int         // HTTP status code; zero is treated as 200
	Header     http.Header // Response headers
	Body       []byte      // Response body
}

// Into returns the response itself.
func (r *Response) Into() *Response {
	return r
}

// Status returns the effective status code of the response.
func (r *Response) Status() int {
	if r.StatusCode == 0 {
		return http.StatusOK
	}
	return r.StatusCode
}

// New creates a response with the given status code and body.
func New(statusCode int, body []byte) *Response {
	return &Response{
		StatusCode: statusCode,
		Header:     make(http.Header),
		Body:       body,
	}
}

// Empty returns a 200 response with no body.
func Empty() *Response {
	return New(http.StatusOK, nil)
}

// Text returns a 200 plain text response.
func Text(s string) *Response {
	resp := New(http.StatusOK, []byte(s))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	return resp
}

// Error returns a plain text response with the given status code, in the
// same shape http.Error produces.
func Error(statusCode int, message string) *Response {
	resp := New(statusCode, []byte(message+"\n"))
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.Header.Set("X-Content-Type-Options", "nosniff")
	return resp
}

// JSON returns a 200 response with v encoded as JSON. If v cannot be encoded
// the result is a 500 response.
func JSON[T any](v T) *Response {
	return Encode[T](codec.NewJSONCodec[T](), v)
}

// Proto returns a 200 response with msg in protobuf wire format. If msg cannot
// be encoded the result is a 500 response.
func Proto[T proto.Message](msg T) *Response {
	return Encode[T](codec.NewProtoCodec[T](), msg)
}

// Encode returns a 200 response with v encoded by enc.
func Encode[T any](enc codec.Encoder[T], v T) *Response {
	body, err := enc.Encode(v)
	if err != nil {
		return Error(http.StatusInternalServerError, "Failed to encode response")
	}
	resp := New(http.StatusOK, body)
	resp.Header.Set("Content-Type", enc.ContentType())
	return resp
}

// WithStatus converts r and overrides its status code.
func WithStatus(r Reply, statusCode int) *Response {
	resp := r.Into()
	resp.StatusCode = statusCode
	return resp
}

// WithHeader converts r and sets a header on it.
func WithHeader(r Reply, key, value string) *Response {
	resp := r.Into()
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	resp.Header.Set(key, value)
	return resp
}

// Write writes resp to w.
func Write(w http.ResponseWriter, resp *Response) error {
	h := w.Header()
	for k, vs := range resp.Header {
		h[k] = append([]string(nil), vs...)
	}
	if h.Get("Content-Length") == "" && len(resp.Body) > 0 {
		h.Set("Content-Length", strconv.Itoa(len(resp.Body)))
	}
	w.WriteHeader(resp.Status())
	if len(resp.Body) == 0 {
		return nil
	}
	_, err := w.Write(resp.Body)
	return err
}
