package middleware

import (
	"fmt"
	"net/http"
	"parking/config"
	"parking/infras/metrics"
	"parking/infras/otel"
	"parking/shared/cache"
	"parking/shared/constant"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	otelHTTPScopeName = "http"
	unmatchedRoute    = "unmatched"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	Metrics(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel    otel.Otel
	config  *config.Config
	cache   cache.RedisCache
	metrics metrics.Metrics
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, metrics metrics.Metrics) AppMiddleware {
	return &appMiddleware{
		otel:    otel,
		config:  config,
		cache:   cache,
		metrics: metrics,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     clientIP(r),
			"http.request_id": chiMiddleware.GetReqID(ctx),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"http.route":       routePattern(r),
			"http.status_code": ww.Status(),
		})
	})
}

// Metrics records request latency labelled by the matched route pattern.
func (a *appMiddleware) Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		a.metrics.ObserveRequest(r.Method, routePattern(r), status, time.Since(start))
	})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}

	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}

	return unmatchedRoute
}
