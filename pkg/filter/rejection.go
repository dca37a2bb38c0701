package filter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Suhaibinator/SFilter/pkg/reply"
)

// Rejection is the error a filter returns to turn a request away. It carries
// the status code and message the client will see.
type Rejection struct {
	StatusCode int    // HTTP status code (e.g., 400, 404, 429)
	Message    string // Message sent in the response body
	Cause      error  // Underlying error, never shown to the client
}

// Error implements the error interface in the format "status: message".
func (r *Rejection) Error() string {
	if r.Cause != nil {
		return fmt.Sprintf("%d: %s: %v", r.StatusCode, r.Message, r.Cause)
	}
	return fmt.Sprintf("%d: %s", r.StatusCode, r.Message)
}

// Unwrap returns the underlying cause.
func (r *Rejection) Unwrap() error {
	return r.Cause
}

// unmatched reports whether the rejection only means "this filter does not apply".
func (r *Rejection) unmatched() bool {
	return r.StatusCode == http.StatusNotFound || r.StatusCode == http.StatusMethodNotAllowed
}

// Reject creates a rejection with the given status code and message.
func Reject(statusCode int, message string) *Rejection {
	return &Rejection{StatusCode: statusCode, Message: message}
}

// RejectWithCause creates a rejection that wraps cause.
func RejectWithCause(statusCode int, message string, cause error) *Rejection {
	return &Rejection{StatusCode: statusCode, Message: message, Cause: cause}
}

// NotFound returns the rejection for a request no filter matched.
func NotFound() *Rejection {
	return Reject(http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// MethodNotAllowed returns the rejection for a matched path with the wrong method.
func MethodNotAllowed() *Rejection {
	return Reject(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
}

// Recover converts an error returned by a filter into a response. A
// *Rejection anywhere in the chain supplies the status and message; any
// other error becomes a 500.
func Recover(err error) *reply.Response {
	var rej *Rejection
	if errors.As(err, &rej) {
		return reply.Error(rej.StatusCode, rej.Message)
	}
	return reply.Error(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
