package filter

import (
	"net/http"
	"strings"

	"github.com/Suhaibinator/SFilter/pkg/store"
)

// Method rejects requests whose method is not one of methods with 405.
func Method(methods ...string) Predicate {
	return func(r *http.Request) error {
		for _, m := range methods {
			if strings.EqualFold(r.Method, m) {
				return nil
			}
		}
		return MethodNotAllowed()
	}
}

// Header rejects requests without the named header with 400. When value is
// not empty the header must also equal it.
func Header(name, value string) Predicate {
	return func(r *http.Request) error {
		got := r.Header.Get(name)
		if got == "" {
			return Reject(http.StatusBadRequest, "Missing request header "+name)
		}
		if value != "" && got != value {
			return Reject(http.StatusBadRequest, "Invalid request header "+name)
		}
		return nil
	}
}

// StoreValue records value under key in the request's LazyReqStore. Requests
// without a store are rejected with 500.
func StoreValue(key, value any) Predicate {
	return func(r *http.Request) error {
		s, ok := store.FromRequest(r)
		if !ok {
			return Reject(http.StatusInternalServerError, "Missing request store")
		}
		s.Set(key, value)
		return nil
	}
}
