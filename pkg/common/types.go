// Package common provides shared types used across SFilter.
package common

import (
	"net/http"
)

// Middleware is a function that wraps an http.Handler.
// Middleware can be chained together to create a pipeline of request processing.
type Middleware func(http.Handler) http.Handler
