package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"parking/config"
	"parking/infras/kafka"
	"parking/infras/metrics"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/shared/constant"
	"parking/transport/http/middleware"
	"parking/transport/http/response"
	"parking/transport/http/router"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	_ "parking/docs" // swagger docs

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

const readHeaderTimeout = 10 * time.Second

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

// Resources are the connections released after the server stops accepting requests.
type Resources struct {
	DB    *postgres.Connection
	Redis *goRedis.Client
	Kafka kafka.Client
	Otel  otel.Otel
}

func (r Resources) Close(ctx context.Context) {
	if r.Kafka != nil {
		if err := r.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing kafka writer")
		}
	}

	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed closing redis client")
		}
	}

	if r.DB != nil {
		r.DB.Close()
	}

	if r.Otel != nil {
		if err := r.Otel.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed flushing traces")
		}
	}
}

type HTTP struct {
	Config    *config.Config
	Router    router.Router
	App       middleware.AppMiddleware
	Metrics   metrics.Metrics
	Resources Resources

	state atomic.Int32
	once  sync.Once
	mux   *chi.Mux
}

func New(cfg *config.Config, r router.Router, app middleware.AppMiddleware, m metrics.Metrics, resources Resources) *HTTP {
	return &HTTP{
		Config:    cfg,
		Router:    r,
		App:       app,
		Metrics:   m,
		Resources: resources,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Serve blocks until the server has shut down.
func (h *HTTP) Serve() {
	h.setup()

	server := &http.Server{
		Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:           h.mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	done := make(chan struct{})

	go h.respondToSigterm(server, done)

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}

	<-done
}

// ServeHTTP lets the whole application run as a single http.Handler.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.once.Do(h.setupRoutes)
	h.mux.ServeHTTP(w, r)
}

func (h *HTTP) setup() {
	h.once.Do(h.setupRoutes)
}

func (h *HTTP) setupRoutes() {
	mux := chi.NewRouter()

	mux.Use(
		chiMiddleware.RequestID,
		chiMiddleware.RealIP,
		chiMiddleware.Recoverer,
	)

	if h.Config.App.CORS.Enable {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   h.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   h.Config.App.CORS.AllowedHeaders,
			AllowCredentials: h.Config.App.CORS.AllowCredentials,
			MaxAge:           h.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	mux.Use(h.App.Tracing, h.App.Metrics)

	if timeout := h.Config.Server.RequestTimeoutSeconds; timeout > 0 {
		mux.Use(chiMiddleware.Timeout(time.Duration(timeout) * time.Second))
	}

	mux.Get("/health", h.health)
	mux.Handle("/metrics", h.Metrics.Handler())
	mux.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	mux.Group(func(r chi.Router) {
		r.Use(h.App.RateLimit())
		h.Router.SetupRoutes(r)
	})

	h.mux = mux
	h.state.Store(int32(ServerStateReady))
}

func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	if h.State() != ServerStateReady {
		response.WithPreparingShutdown(w)

		return
	}

	response.WithHealthy(w)
}

func (h *HTTP) respondToSigterm(server *http.Server, done chan struct{}) {
	defer close(done)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	<-signals

	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env != constant.ServerEnvDevelopment {
		log.Info().Msg("Received SIGTERM.")
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

		h.state.Store(int32(ServerStateInGracePeriod))

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)
	} else {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to drain HTTP server")
	}

	h.Resources.Close(ctx)

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
