package reservation_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	otelMocks "parking/infras/otel/mocks"
	lotMocks "parking/internal/domains/lot/mocks"
	lotDto "parking/internal/domains/lot/model/dto"
	"parking/internal/domains/reservation/mocks"
	"parking/internal/domains/reservation/model/dto"
	"parking/internal/handlers/reservation"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const lotID = "7f1c2f5e-8a0b-4b55-9b7e-3c1d2a4e5f60"

func TestHandler(t *testing.T) {
	booked := dto.BookResponse{Reservation: dto.ReservationResponse{ID: "r-1", Active: true}, SpotNumber: 1}

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		setupMock   func(m *mocks.MockReservationService, l *lotMocks.MockLotService)
		wantCode    int
		wantBody    string
	}{
		{
			name:   "book",
			method: http.MethodPost,
			path:   "/book/" + lotID,
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().Book(gomock.Any(), lotID).Return(booked, nil)
			},
			wantCode: http.StatusCreated,
			wantBody: `"spot_number":1`,
		},
		{
			name:   "book full lot",
			method: http.MethodPost,
			path:   "/book/" + lotID,
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().Book(gomock.Any(), lotID).Return(dto.BookResponse{}, failure.NoAvailabilityError)
			},
			wantCode: http.StatusConflict,
			wantBody: failure.NoAvailabilityError.Error(),
		},
		{
			name:   "book form lists lots",
			method: http.MethodGet,
			path:   "/book-form",
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				l.EXPECT().GetAll(gomock.Any()).Return(lotDto.GetLotsResponse{
					Lots: []lotDto.LotAvailabilityResponse{{LotResponse: lotDto.LotResponse{ID: lotID}}},
				}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: lotID,
		},
		{
			name:        "book form json",
			method:      http.MethodPost,
			path:        "/book-form",
			contentType: constant.ContentTypeJSON,
			body:        `{"lot_id":"` + lotID + `"}`,
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().Book(gomock.Any(), lotID).Return(booked, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:        "book form urlencoded",
			method:      http.MethodPost,
			path:        "/book-form",
			contentType: constant.ContentTypeFormURLEncoded,
			body:        url.Values{"lot_id": {lotID}}.Encode(),
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().Book(gomock.Any(), lotID).Return(booked, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:        "book form without lot",
			method:      http.MethodPost,
			path:        "/book-form",
			contentType: constant.ContentTypeJSON,
			body:        `{}`,
			setupMock:   func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {},
			wantCode:    http.StatusBadRequest,
		},
		{
			name:   "release",
			method: http.MethodPost,
			path:   "/release/r-1",
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().Release(gomock.Any(), "r-1").Return(dto.ReleaseResponse{Hours: 1, Cost: 5, Price: 5}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"cost":5`,
		},
		{
			name:   "release someone else's",
			method: http.MethodPost,
			path:   "/release/r-1",
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().Release(gomock.Any(), "r-1").Return(dto.ReleaseResponse{}, failure.NotOwnerError)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "all reservations",
			method: http.MethodGet,
			path:   "/admin/reservations?page=2&limit=5",
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().GetAll(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, params gDto.QueryParams) (dto.GetReservationsResponse, error) {
						assert.Equal(t, 2, params.Page)
						assert.Equal(t, 5, params.Limit)

						return dto.GetReservationsResponse{}, nil
					})
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "history",
			method: http.MethodGet,
			path:   "/history",
			setupMock: func(m *mocks.MockReservationService, l *lotMocks.MockLotService) {
				m.EXPECT().GetHistory(gomock.Any(), gomock.Any()).Return(dto.GetReservationsResponse{
					Reservations: []dto.ReservationResponse{{ID: "r-1"}},
				}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: `"id":"r-1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockReservationService(ctrl)
			lotService := lotMocks.NewMockLotService(ctrl)
			tt.setupMock(svc, lotService)

			handler := reservation.New(svc, lotService, otelMocks.NewOtel())
			r := chi.NewRouter()
			handler.Router(r)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(constant.RequestHeaderContentType, tt.contentType)
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
