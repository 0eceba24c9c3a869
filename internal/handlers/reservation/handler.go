package reservation

import (
	"context"
	"net/http"
	"parking/infras/otel"
	lotService "parking/internal/domains/lot/service"
	"parking/internal/domains/reservation/model/dto"
	"parking/internal/domains/reservation/service"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/validator"
	"parking/transport/http/response"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const formLotID = "lot_id"

type Handler struct {
	service    service.Reservation
	lotService lotService.Lot
	otel       otel.Otel
}

func New(service service.Reservation, lotService lotService.Lot, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		lotService: lotService,
		otel:       otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/book/{lotID}", handler.Book)
	r.Get("/book-form", handler.GetBookForm)
	r.Post("/book-form", handler.SubmitBookForm)
	r.Post("/release/{id}", handler.Release)
	r.Get("/admin/reservations", handler.GetReservations)
	r.Get("/history", handler.GetHistory)
}

// Book reserves the lowest-numbered free spot of a lot
// @Summary Book a spot
// @Tags Reservation
// @Produce json
// @Param lotID path string true "Lot ID"
// @Success 201 {object} response.Data[dto.BookResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "No available spot, or caller already parked"
// @Failure 500 {object} response.Error
// @Router /v1/book/{lotID} [post]
// @Security BearerAuth
func (handler *Handler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Book")
	defer scope.End()

	if err := handler.book(ctx, w, chi.URLParam(r, constant.RequestParamLotID)); err != nil {
		scope.TraceError(err)
	}
}

// GetBookForm lists the lots a user can book in
// @Summary Lots to choose from
// @Tags Reservation
// @Produce json
// @Success 200 {object} response.Data[any]
// @Failure 500 {object} response.Error
// @Router /v1/book-form [get]
// @Security BearerAuth
func (handler *Handler) GetBookForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookForm")
	defer scope.End()

	res, err := handler.lotService.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SubmitBookForm books a spot in the lot named by the body
// @Summary Book a spot from the form
// @Tags Reservation
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param request body dto.BookRequest true "Book Request"
// @Success 201 {object} response.Data[dto.BookResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/book-form [post]
// @Security BearerAuth
func (handler *Handler) SubmitBookForm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SubmitBookForm")
	defer scope.End()

	req := dto.BookRequest{}

	var err error

	if strings.HasPrefix(r.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeFormURLEncoded) {
		req.LotID = r.PostFormValue(formLotID)
		err = validator.ValidateStruct(&req)
	} else {
		err = validator.Validate(r.Body, &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.book(ctx, w, req.LotID); err != nil {
		scope.TraceError(err)
	}
}

func (handler *Handler) book(ctx context.Context, w http.ResponseWriter, lotID string) error {
	res, err := handler.service.Book(ctx, lotID)
	if err != nil {
		log.Error().Err(err).Str("lot", lotID).Msg("failed to book spot")

		response.WithError(w, err)

		return err
	}

	response.WithJSON(w, http.StatusCreated, res)

	return nil
}

// Release closes the caller's reservation and returns the bill
// @Summary Release a spot
// @Tags Reservation
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} response.Data[dto.ReleaseResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/release/{id} [post]
// @Security BearerAuth
func (handler *Handler) Release(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Release")
	defer scope.End()

	res, err := handler.service.Release(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to release spot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Spot released successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// GetReservations lists every reservation, newest first
// @Summary All reservations
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/admin/reservations [get]
// @Security BearerAuth
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetHistory lists the caller's reservations, newest first
// @Summary Reservation history
// @Tags Reservation
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetReservationsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/history [get]
// @Security BearerAuth
func (handler *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHistory")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	res, err := handler.service.GetHistory(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get history")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
