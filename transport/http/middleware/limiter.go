package middleware

import (
	"net"
	"net/http"
	"parking/shared"
	"parking/shared/constant"
	"parking/transport/http/response"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownUserAgent  = "unknown"
)

// RateLimit allows MaxRequests per client and user agent in a fixed window.
// Requests pass through when the counter store is unreachable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		if !limiter.Enable {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientIP(r), userAgent(r))

			count, err := a.cache.Increment(r.Context(), key, limiter.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, letting request through")
				next.ServeHTTP(w, r)

				return
			}

			remaining := max(0, int64(limiter.MaxRequests)-count)

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			if count > int64(limiter.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func userAgent(r *http.Request) string {
	if ua := r.Header.Get(constant.RequestHeaderUserAgent); ua != constant.Empty {
		return ua
	}

	return unknownUserAgent
}

// clientIP relies on chi's RealIP having already rewritten RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
