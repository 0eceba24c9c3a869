package router

import (
	"parking/internal/handlers/auth"
	"parking/internal/handlers/dashboard"
	"parking/internal/handlers/lot"
	"parking/internal/handlers/reservation"
	"parking/internal/handlers/spot"
	"parking/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Dashboard   dashboard.Handler
	Lot         lot.Handler
	Spot        spot.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

// SetupRoutes mounts every domain under /v1 behind authentication and role checks.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth, r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.Lot.Router(routerGroup)
		r.DomainHandlers.Spot.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
