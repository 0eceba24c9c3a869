//go:build wireinject
// +build wireinject

package di

import (
	"parking/config"
	"parking/infras/jwt"
	"parking/infras/kafka"
	"parking/infras/metrics"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/infras/redis"
	"parking/infras/s3"
	"parking/permissions"
	"parking/shared/cache"
	"parking/transport/http"
	"parking/transport/http/middleware"
	"parking/transport/http/router"

	"github.com/google/wire"

	authService "parking/internal/domains/auth/service"
	lotRepository "parking/internal/domains/lot/repository"
	lotService "parking/internal/domains/lot/service"
	reservationEvent "parking/internal/domains/reservation/event"
	reservationRepository "parking/internal/domains/reservation/repository"
	reservationService "parking/internal/domains/reservation/service"
	spotRepository "parking/internal/domains/spot/repository"
	spotService "parking/internal/domains/spot/service"
	userRepository "parking/internal/domains/user/repository"
	userService "parking/internal/domains/user/service"
	authHandler "parking/internal/handlers/auth"
	dashboardHandler "parking/internal/handlers/dashboard"
	lotHandler "parking/internal/handlers/lot"
	reservationHandler "parking/internal/handlers/reservation"
	spotHandler "parking/internal/handlers/spot"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	jwt.NewDenylist,
	kafka.New,
	s3.New,
	metrics.New,
	wire.Struct(new(http.Resources), "*"),
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var lotDomain = wire.NewSet(
	lotRepository.New,
	lotService.New,
)

var spotDomain = wire.NewSet(
	spotRepository.New,
	spotService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationEvent.NewPublisher,
	reservationService.New,
)

var domains = wire.NewSet(
	authDomain,
	lotDomain,
	spotDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	dashboardHandler.New,
	lotHandler.New,
	spotHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}
