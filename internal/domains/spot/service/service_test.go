package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"parking/config"
	otelMocks "parking/infras/otel/mocks"
	pgMocks "parking/infras/postgres/mocks"
	lotMocks "parking/internal/domains/lot/mocks"
	lotModel "parking/internal/domains/lot/model"
	"parking/internal/domains/spot/mocks"
	"parking/internal/domains/spot/model"
	"parking/internal/domains/spot/service"
	"parking/shared/cache"
	cacheMocks "parking/shared/cache/mocks"
	"parking/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gopkg.in/guregu/null.v4"
)

type fixture struct {
	repo       *mocks.MockSpot
	lotRepo    *lotMocks.MockLot
	cache      *cacheMocks.MockRedisCache
	transactor *pgMocks.Transactor
	svc        service.Spot
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       mocks.NewMockSpot(ctrl),
		lotRepo:    lotMocks.NewMockLot(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		transactor: pgMocks.NewTransactor(),
	}

	f.svc = service.New(f.repo, f.lotRepo, f.transactor, &config.Config{}, f.cache, otelMocks.NewOtel())

	return f
}

func TestSpotService_Delete(t *testing.T) {
	lot := lotModel.ParkingLot{ID: "lot-1", MaxSpots: 3, Price: 10}

	tests := []struct {
		name          string
		setupMock     func(f fixture)
		wantCode      int
		wantErr       error
		wantCommitted int
	}{
		{
			name: "available spot is deleted and capacity shrinks",
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.ParkingSpot{ID: "spot-2", LotID: "lot-1", Number: 2, Status: model.StatusAvailable}, nil)
				f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.lotRepo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ any, fields map[string]any, _ any) error {
						assert.Equal(t, 2, fields[lotModel.FieldMaxSpots])

						return nil
					})
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantCommitted: 1,
		},
		{
			name: "occupied spot",
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.ParkingSpot{ID: "spot-1", LotID: "lot-1", Number: 1, Status: model.StatusOccupied}, nil)
			},
			wantErr: failure.SpotOccupiedError,
		},
		{
			name: "spot of another lot",
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.ParkingSpot{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown lot",
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(lotModel.ParkingLot{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "last spot of the lot",
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(lotModel.ParkingLot{ID: "lot-1", MaxSpots: 1}, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.ParkingSpot{ID: "spot-1", LotID: "lot-1", Number: 1, Status: model.StatusAvailable}, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "delete fails",
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.ParkingSpot{ID: "spot-2", LotID: "lot-1", Status: model.StatusAvailable}, nil)
				f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "lot-1", "spot-2")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				assert.NoError(t, err)
			}

			assert.Equal(t, 1, f.transactor.Calls)
			assert.Equal(t, tt.wantCommitted, f.transactor.Committed)
		})
	}
}

func TestSpotService_GetAllByLot(t *testing.T) {
	spots := []model.ParkingSpot{
		{ID: "s-1", LotID: "lot-1", Number: 1, Status: model.StatusOccupied},
		{ID: "s-2", LotID: "lot-1", Number: 2, Status: model.StatusAvailable},
		{ID: "s-3", LotID: "lot-1", Number: 3, Status: model.StatusAvailable},
	}

	tests := []struct {
		name          string
		setupMock     func(f fixture)
		wantCode      int
		wantAvailable int
		wantOccupied  int
	}{
		{
			name: "counts spots by status",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.lotRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(spots, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantAvailable: 2,
			wantOccupied:  1,
		},
		{
			name: "unknown lot",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.lotRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				f.lotRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetAllByLot(context.Background(), "lot-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res.Spots, len(spots))
			assert.Equal(t, tt.wantAvailable, res.Available)
			assert.Equal(t, tt.wantOccupied, res.Occupied)
		})
	}
}

func TestSpotService_FindFree(t *testing.T) {
	t.Run("lowest numbered free spot", func(t *testing.T) {
		f := newFixture(t)
		f.lotRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.ParkingSpot{{ID: "s-2", LotID: "lot-1", Number: 2, Status: model.StatusAvailable}}, nil)

		res, err := f.svc.FindFree(context.Background(), "lot-1")
		assert.NoError(t, err)
		assert.Equal(t, 2, res.Number)
	})

	t.Run("lot is full", func(t *testing.T) {
		f := newFixture(t)
		f.lotRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ParkingSpot{}, nil)

		_, err := f.svc.FindFree(context.Background(), "lot-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestSpotService_GetAllWithReservations(t *testing.T) {
	f := newFixture(t)
	f.lotRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().GetAllWithLatestReservation(gomock.Any(), "lot-1").Return([]model.SpotReservation{
		{
			ParkingSpot:   model.ParkingSpot{ID: "s-1", Number: 1, Status: model.StatusOccupied},
			ReservationID: null.StringFrom("r-1"),
			Username:      null.StringFrom("alice"),
		},
		{ParkingSpot: model.ParkingSpot{ID: "s-2", Number: 2, Status: model.StatusAvailable}},
	}, nil)

	res, err := f.svc.GetAllWithReservations(context.Background(), "lot-1")

	assert.NoError(t, err)
	assert.Equal(t, "lot-1", res.LotID)
	assert.Len(t, res.Spots, 2)
	assert.NotNil(t, res.Spots[0].Reservation)
	assert.True(t, res.Spots[0].Reservation.Active)
	assert.Equal(t, "alice", res.Spots[0].Reservation.Username)
	assert.Nil(t, res.Spots[1].Reservation)
}
