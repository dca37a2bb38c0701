package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/Suhaibinator/SFilter/pkg/store"
)

// IPSourceType defines the source for client IP addresses
type IPSourceType string

const (
	// IPSourceRemoteAddr uses the request's RemoteAddr field
	IPSourceRemoteAddr IPSourceType = "remote_addr"

	// IPSourceXForwardedFor uses the X-Forwarded-For header
	IPSourceXForwardedFor IPSourceType = "x_forwarded_for"

	// IPSourceXRealIP uses the X-Real-IP header
	IPSourceXRealIP IPSourceType = "x_real_ip"

	// IPSourceCustomHeader uses a custom header specified in the configuration
	IPSourceCustomHeader IPSourceType = "custom_header"
)

// IPConfig defines configuration for IP extraction
type IPConfig struct {
	// Source specifies where to extract the client IP from
	Source IPSourceType

	// CustomHeader is the name of the custom header to use when Source is IPSourceCustomHeader
	CustomHeader string

	// TrustProxy determines whether to trust proxy headers like X-Forwarded-For.
	// If false, RemoteAddr is always used.
	TrustProxy bool
}

// DefaultIPConfig returns the default IP configuration
func DefaultIPConfig() *IPConfig {
	return &IPConfig{
		Source:     IPSourceXForwardedFor,
		TrustProxy: true,
	}
}

// clientIPKey is the LazyReqStore key for the client IP.
type clientIPKey struct{}

// ClientIP returns the client IP recorded by ClientIPMiddleware, or "".
func ClientIP(r *http.Request) string {
	s, _ := store.FromRequest(r)
	ip, _ := store.Value[string](s, clientIPKey{})
	return ip
}

// ClientIPMiddleware creates a middleware that extracts the client IP from the
// request and records it in the request's LazyReqStore.
func ClientIPMiddleware(config *IPConfig) Middleware {
	if config == nil {
		config = DefaultIPConfig()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = store.Ensure(r)
			s, _ := store.FromRequest(r)
			s.Set(clientIPKey{}, extractClientIP(r, config))

			next.ServeHTTP(w, r)
		})
	}
}

// extractClientIP extracts the client IP from the request based on the configuration
func extractClientIP(r *http.Request, config *IPConfig) string {
	var ip string
	if config.TrustProxy {
		switch config.Source {
		case IPSourceXRealIP:
			ip = r.Header.Get("X-Real-IP")
		case IPSourceCustomHeader:
			ip = r.Header.Get(config.CustomHeader)
		case IPSourceRemoteAddr:
			ip = r.RemoteAddr
		default:
			// The leftmost address is the original client
			ip, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		}
	}

	ip = strings.TrimSpace(ip)
	if ip == "" {
		ip = r.RemoteAddr
	}
	return stripPort(ip)
}

// stripPort removes the port from host:port and [ipv6]:port forms.
func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.TrimSuffix(strings.TrimPrefix(addr, "["), "]")
}
