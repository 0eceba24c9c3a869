package spot

import (
	"net/http"
	"parking/infras/otel"
	"parking/internal/domains/spot/service"
	"parking/shared/constant"
	"parking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Spot
	otel    otel.Otel
}

func New(service service.Spot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/admin/lot/{lotID}/spots", handler.GetSpotsWithReservations)
	r.Post("/admin/lot/{lotID}/spot/delete/{spotID}", handler.DeleteSpot)
	r.Get("/lot/{lotID}/spots", handler.GetSpots)
	r.Get("/lot/{lotID}/free-spot", handler.GetFreeSpot)
}

// GetSpotsWithReservations lists the lot's spots with their latest reservation
// @Summary Spots of a lot with reservations
// @Tags Spot
// @Produce json
// @Param lotID path string true "Lot ID"
// @Success 200 {object} response.Data[dto.GetSpotReservationsResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lot/{lotID}/spots [get]
// @Security BearerAuth
func (handler *Handler) GetSpotsWithReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpotsWithReservations")
	defer scope.End()

	res, err := handler.service.GetAllWithReservations(ctx, chi.URLParam(r, constant.RequestParamLotID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get spots with reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// DeleteSpot deletes a free spot
// @Summary Delete a spot
// @Tags Spot
// @Produce json
// @Param lotID path string true "Lot ID"
// @Param spotID path string true "Spot ID"
// @Success 200 {object} response.Message "Spot deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lot/{lotID}/spot/delete/{spotID} [post]
// @Security BearerAuth
func (handler *Handler) DeleteSpot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSpot")
	defer scope.End()

	lotID := chi.URLParam(r, constant.RequestParamLotID)
	spotID := chi.URLParam(r, constant.RequestParamSpotID)

	if err := handler.service.Delete(ctx, lotID, spotID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete spot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Spot deleted successfully")

	response.WithMessage(w, http.StatusOK, "Spot deleted successfully")
}

// GetSpots lists the lot's spots ordered by number
// @Summary Spots of a lot
// @Tags Spot
// @Produce json
// @Param lotID path string true "Lot ID"
// @Success 200 {object} response.Data[dto.GetSpotsResponse]
// @Failure 404 {object} response.Error
// @Router /v1/lot/{lotID}/spots [get]
// @Security BearerAuth
func (handler *Handler) GetSpots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpots")
	defer scope.End()

	res, err := handler.service.GetAllByLot(ctx, chi.URLParam(r, constant.RequestParamLotID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get spots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetFreeSpot returns the spot the next booking would get
// @Summary Lowest free spot of a lot
// @Tags Spot
// @Produce json
// @Param lotID path string true "Lot ID"
// @Success 200 {object} response.Data[dto.SpotResponse]
// @Failure 404 {object} response.Error
// @Router /v1/lot/{lotID}/free-spot [get]
// @Security BearerAuth
func (handler *Handler) GetFreeSpot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFreeSpot")
	defer scope.End()

	res, err := handler.service.FindFree(ctx, chi.URLParam(r, constant.RequestParamLotID))
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
