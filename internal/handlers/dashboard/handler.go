package dashboard

import (
	"net/http"
	"parking/infras/otel"
	lotDto "parking/internal/domains/lot/model/dto"
	lotService "parking/internal/domains/lot/service"
	reservationDto "parking/internal/domains/reservation/model/dto"
	reservationService "parking/internal/domains/reservation/service"
	"parking/shared/constant"
	"parking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type AdminDashboardResponse struct {
	Lots []lotDto.LotAvailabilityResponse `json:"lots"`
}

type UserDashboardResponse struct {
	Lots              []lotDto.LotAvailabilityResponse    `json:"lots"`
	ActiveReservation *reservationDto.ReservationResponse `json:"active_reservation"`
}

type Handler struct {
	lotService         lotService.Lot
	reservationService reservationService.Reservation
	otel               otel.Otel
}

func New(lotService lotService.Lot, reservationService reservationService.Reservation, otel otel.Otel) Handler {
	return Handler{
		lotService:         lotService,
		reservationService: reservationService,
		otel:               otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/admin", handler.Admin)
	r.Get("/user", handler.User)
}

// Admin lists every lot with its spot counts
// @Summary Admin dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[AdminDashboardResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin [get]
// @Security BearerAuth
func (handler *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminDashboard")
	defer scope.End()

	lots, err := handler.lotService.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, AdminDashboardResponse{Lots: lots.Lots})
}

// User lists the lots with availability and the caller's active reservation
// @Summary User dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Data[UserDashboardResponse]
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/user [get]
// @Security BearerAuth
func (handler *Handler) User(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UserDashboard")
	defer scope.End()

	lots, err := handler.lotService.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lots")

		response.WithError(w, err)

		return
	}

	active, err := handler.reservationService.GetActive(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get active reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, UserDashboardResponse{Lots: lots.Lots, ActiveReservation: active})
}
