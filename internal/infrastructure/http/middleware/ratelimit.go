package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"
	stdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
)

// NewIPRateLimiter returns middleware that limits by client IP (in-memory
// store). rateFormatted: "100-M", "1000-H", "50-S". Empty disables. This is
// the coarse outer throttle; the governor policies below are the per-endpoint
// ones.
func NewIPRateLimiter(rateFormatted string) (func(next http.Handler) http.Handler, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}
	store := memory.NewStore()
	instance := limiter.New(store, rate)
	return stdlib.NewMiddleware(instance).Handler, nil
}

// Governor wraps a ports.RateGovernor policy around a route group, keyed by
// client IP (RealIP must run first). Denials answer 429 with a retry-after
// hint; allowed requests carry the X-RateLimit-* headers.
func Governor(name string, gov ports.RateGovernor, policy ports.RatePolicy) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := clientIdentifier(r)
			decision := gov.Allow(identifier, policy.MaxRequests, policy.Window)
			if !decision.Allowed {
				RecordGovernorDenial(name)
				w.Header().Set("Retry-After", strconv.Itoa(decision.ResetSeconds))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = fmt.Fprintf(w,
					`{"error":"Too many requests. Please try again in %d seconds.","code":"rate_limited"}`,
					decision.ResetSeconds)
				return
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(policy.MaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(decision.ResetSeconds))
			next.ServeHTTP(w, r)
		})
	}
}

// DeviceGovernor is the governor hook for the device-ingestion routes. The
// observed design left them unthrottled, so it stays a no-op unless enabled.
func DeviceGovernor(enabled bool, gov ports.RateGovernor, policy ports.RatePolicy) func(next http.Handler) http.Handler {
	if !enabled {
		return noopMiddleware
	}
	return Governor("device", gov, policy)
}

// clientIdentifier keys the window on the client IP alone. RealIP rewrites
// RemoteAddr to the bare forwarded address behind a proxy, but direct
// connections keep their ip:port form, and the ephemeral port would give
// every connection a fresh window.
func clientIdentifier(r *http.Request) string {
	addr := r.RemoteAddr
	if addr == "" {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func noopMiddleware(next http.Handler) http.Handler {
	return next
}
