package lot

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"parking/infras/otel"
	"parking/internal/domains/lot/model"
	"parking/internal/domains/lot/model/dto"
	"parking/internal/domains/lot/service"
	"parking/shared"
	"parking/shared/constant"
	"parking/shared/failure"
	"parking/shared/validator"
	"parking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lot
	otel    otel.Otel
}

func New(service service.Lot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Post("/create-lot", handler.CreateLot)
	r.Get("/admin/lot/edit/{id}", handler.GetLot)
	r.Post("/admin/lot/edit/{id}", handler.UpdateLot)
	r.Post("/admin/lot/delete/{id}", handler.DeleteLot)
}

// parseForm accepts both multipart and urlencoded bodies.
func parseForm(r *http.Request) error {
	err := r.ParseMultipartForm(constant.RequestMaxMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to parse form: %w", err)) //nolint:wrapcheck
	}

	return nil
}

// formNumbers reads price and max_spots. Empty values stay zero.
func formNumbers(r *http.Request) (price float64, maxSpots int, err error) {
	if value := r.FormValue(model.FieldPrice); value != constant.Empty {
		if price, err = shared.ConvertStringToFloat(value); err != nil {
			return 0, 0, failure.BadRequestFromString("price must be a number") //nolint:wrapcheck
		}
	}

	if value := r.FormValue(model.FieldMaxSpots); value != constant.Empty {
		if maxSpots, err = shared.ConvertStringToInt(value); err != nil {
			return 0, 0, failure.BadRequestFromString("max_spots must be an integer") //nolint:wrapcheck
		}
	}

	return price, maxSpots, nil
}

func formImageFile(r *http.Request) (multipart.File, *multipart.FileHeader) {
	file, fileHeader, err := r.FormFile(model.FieldImage)
	if err != nil {
		return nil, nil
	}

	return file, fileHeader
}

// CreateLot creates a parking lot together with its spots
// @Summary Create a parking lot
// @Description Create a lot and max_spots available spots numbered from 1.
// @Tags Lot
// @Accept mpfd
// @Produce json
// @Param name formData string true "Lot name"
// @Param address formData string true "Address"
// @Param pin_code formData string true "Pin code"
// @Param price formData number true "Hourly price"
// @Param max_spots formData integer true "Number of spots"
// @Param image formData file false "Lot image"
// @Success 201 {object} response.Data[dto.LotResponse] "Lot created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/create-lot [post]
// @Security BearerAuth
func (handler *Handler) CreateLot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLot")
	defer scope.End()

	if err := parseForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")

		response.WithError(w, err)

		return
	}

	price, maxSpots, err := formNumbers(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.CreateLotRequest{
		Name:     r.FormValue(model.FieldName),
		Address:  r.FormValue(model.FieldAddress),
		PinCode:  r.FormValue(model.FieldPinCode),
		Price:    price,
		MaxSpots: maxSpots,
	}

	if file, fileHeader := formImageFile(r); file != nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lot")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	scope.AddEvent("Lot created successfully by " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetLot returns a lot for the edit form
// @Summary Get a parking lot
// @Tags Lot
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} response.Data[dto.LotAvailabilityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lot/edit/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetLot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lot")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateLot applies a partial update to a lot
// @Summary Update a parking lot
// @Description Changing max_spots adds spots or removes the highest-numbered free ones.
// @Tags Lot
// @Accept mpfd
// @Produce json
// @Param id path string true "Lot ID"
// @Param name formData string false "Lot name"
// @Param address formData string false "Address"
// @Param pin_code formData string false "Pin code"
// @Param price formData number false "Hourly price"
// @Param max_spots formData integer false "Number of spots"
// @Param image formData file false "Lot image"
// @Success 200 {object} response.Message "Lot updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lot/edit/{id} [post]
// @Security BearerAuth
func (handler *Handler) UpdateLot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := parseForm(r); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse form")

		response.WithError(w, err)

		return
	}

	price, maxSpots, err := formNumbers(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	req := dto.UpdateLotRequest{
		Name:     r.FormValue(model.FieldName),
		Address:  r.FormValue(model.FieldAddress),
		PinCode:  r.FormValue(model.FieldPinCode),
		Price:    price,
		MaxSpots: maxSpots,
	}

	if file, fileHeader := formImageFile(r); file != nil {
		req.Image = fileHeader
		req.ImageFile = file

		defer file.Close()
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update lot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lot updated successfully")

	response.WithMessage(w, http.StatusOK, "Lot updated successfully")
}

// DeleteLot deletes a lot with no occupied spots
// @Summary Delete a parking lot
// @Tags Lot
// @Produce json
// @Param id path string true "Lot ID"
// @Success 200 {object} response.Message "Lot deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lot/delete/{id} [post]
// @Security BearerAuth
func (handler *Handler) DeleteLot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete lot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lot deleted successfully")

	response.WithMessage(w, http.StatusOK, "Lot deleted successfully")
}
