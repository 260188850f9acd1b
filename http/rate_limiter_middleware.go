package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// RateLimitMiddleware throttles by client address. It expects RealIP to have
// run, so RemoteAddr may come without a port.
func RateLimitMiddleware(limiter *RateLimiter, logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				client = host
			}

			ok, retryAfter := limiter.Allow(client)
			if !ok {
				logger.WithFields(logrus.Fields{
					"client": client,
					"path":   r.URL.Path,
				}).Warn("Rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				writeError(w, logger, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
