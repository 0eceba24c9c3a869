package service_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"parking/config"
	"parking/infras/metrics"
	metricsMocks "parking/infras/metrics/mocks"
	otelMocks "parking/infras/otel/mocks"
	pgMocks "parking/infras/postgres/mocks"
	lotMocks "parking/internal/domains/lot/mocks"
	lotModel "parking/internal/domains/lot/model"
	"parking/internal/domains/reservation/mocks"
	"parking/internal/domains/reservation/model"
	"parking/internal/domains/reservation/service"
	spotMocks "parking/internal/domains/spot/mocks"
	spotModel "parking/internal/domains/spot/model"
	cacheMocks "parking/shared/cache/mocks"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gopkg.in/guregu/null.v4"
)

var start = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func callerCtx(userID, username, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, username)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

type fixture struct {
	repo       *mocks.MockReservation
	lotRepo    *lotMocks.MockLot
	spotRepo   *spotMocks.MockSpot
	publisher  *mocks.MockPublisher
	metrics    *metricsMocks.Metrics
	transactor *pgMocks.Transactor
	clock      *clock
	svc        service.Reservation
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       mocks.NewMockReservation(ctrl),
		lotRepo:    lotMocks.NewMockLot(ctrl),
		spotRepo:   spotMocks.NewMockSpot(ctrl),
		publisher:  mocks.NewMockPublisher(ctrl),
		metrics:    metricsMocks.NewMetrics(),
		transactor: pgMocks.NewTransactor(),
		clock:      &clock{now: start},
	}

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.NewWithClock(f.repo, f.lotRepo, f.spotRepo, f.transactor, &config.Config{}, cache,
		otelMocks.NewOtel(), f.publisher, f.metrics, f.clock.Now)

	return f
}

func TestReservationService_Book(t *testing.T) {
	lot := lotModel.ParkingLot{ID: "lot-1", Name: "Main", Price: 10, MaxSpots: 2}

	tests := []struct {
		name        string
		role        string
		setupMock   func(f fixture)
		wantErr     error
		wantCode    int
		wantOutcome string
	}{
		{
			name: "claims lowest free spot",
			role: constant.RoleUser,
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.spotRepo.EXPECT().ClaimAvailableTx(gomock.Any(), gomock.Any(), "lot-1", "alice").
					Return(spotModel.ParkingSpot{ID: "spot-1", LotID: "lot-1", Number: 1, Status: spotModel.StatusOccupied}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, r model.Reservation) error {
						assert.Equal(t, "u-1", r.UserID)
						assert.Equal(t, null.StringFrom("spot-1"), r.SpotID)
						assert.True(t, r.IsActive())
						assert.Equal(t, 10.0, r.Cost)
						assert.True(t, start.Equal(r.StartTime))

						return nil
					})
			},
			wantOutcome: metrics.OutcomeSuccess,
		},
		{
			name:        "admins cannot book",
			role:        constant.RoleAdmin,
			setupMock:   func(f fixture) {},
			wantCode:    http.StatusForbidden,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "unknown lot",
			role: constant.RoleUser,
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lotModel.ParkingLot{}, nil)
			},
			wantCode:    http.StatusNotFound,
			wantOutcome: metrics.OutcomeRejected,
		},
		{
			name: "caller already parked",
			role: constant.RoleUser,
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode:    http.StatusConflict,
			wantOutcome: metrics.OutcomeConflict,
		},
		{
			name: "lot is full",
			role: constant.RoleUser,
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.spotRepo.EXPECT().ClaimAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(spotModel.ParkingSpot{}, nil)
			},
			wantErr:     failure.NoAvailabilityError,
			wantOutcome: metrics.OutcomeNoAvailability,
		},
		{
			name: "concurrent second booking by same user",
			role: constant.RoleUser,
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.spotRepo.EXPECT().ClaimAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(spotModel.ParkingSpot{ID: "spot-2", Number: 2}, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505", Constraint: model.ConstraintActiveUser})
			},
			wantCode:    http.StatusConflict,
			wantOutcome: metrics.OutcomeConflict,
		},
		{
			name: "claim fails",
			role: constant.RoleUser,
			setupMock: func(f fixture) {
				f.lotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lot, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.spotRepo.EXPECT().ClaimAvailableTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(spotModel.ParkingSpot{}, errors.New("db down"))
			},
			wantCode:    http.StatusInternalServerError,
			wantOutcome: metrics.OutcomeError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Book(callerCtx("u-1", "alice", tt.role), "lot-1")

			assert.Equal(t, 1, f.metrics.BookingCount(tt.wantOutcome))

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 0, f.transactor.Committed)
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, 0, f.transactor.Committed)
			default:
				assert.NoError(t, err)
				assert.Equal(t, 1, res.SpotNumber)
				assert.True(t, res.Reservation.Active)
				assert.Equal(t, "Main", *res.Reservation.LotName)
				assert.Equal(t, 1, f.transactor.Committed)
			}
		})
	}
}

func TestReservationService_Release(t *testing.T) {
	active := model.Reservation{
		ID:        "r-1",
		UserID:    "u-1",
		SpotID:    null.StringFrom("spot-1"),
		LotID:     null.StringFrom("lot-1"),
		StartTime: start,
		Cost:      10,
	}

	closed := active
	closed.EndTime = null.TimeFrom(start.Add(time.Hour))

	tests := []struct {
		name      string
		elapsed   time.Duration
		setupMock func(f fixture)
		wantCode  int
		wantErr   error
		wantHours float64
		wantCost  float64
	}{
		{
			name:    "bills prorated hours and frees spot",
			elapsed: 2*time.Hour + 18*time.Minute,
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(active, nil)
				f.lotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(lotModel.ParkingLot{ID: "lot-1", Price: 10}, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, 23.0, fields[model.FieldCost])
						assert.Equal(t, start.Add(2*time.Hour+18*time.Minute), fields[model.FieldEndTime])

						return nil
					})
				f.spotRepo.EXPECT().SetStatusTx(gomock.Any(), gomock.Any(), "spot-1",
					spotModel.StatusOccupied, spotModel.StatusAvailable, "alice").Return(true, nil)
			},
			wantHours: 2.3,
			wantCost:  23,
		},
		{
			name:    "short stay charges minimum",
			elapsed: 30 * time.Minute,
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(active, nil)
				f.lotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(lotModel.ParkingLot{ID: "lot-1", Price: 10}, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.spotRepo.EXPECT().SetStatusTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantHours: 0.5,
			wantCost:  10,
		},
		{
			name:    "spot deleted keeps history",
			elapsed: time.Hour,
			setupMock: func(f fixture) {
				orphan := active
				orphan.SpotID = null.String{}
				orphan.LotID = null.String{}
				orphan.Cost = 8

				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(orphan, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantHours: 1,
			wantCost:  8,
		},
		{
			name: "unknown reservation",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "someone else's reservation",
			setupMock: func(f fixture) {
				other := active
				other.UserID = "u-2"

				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(other, nil)
			},
			wantErr: failure.NotOwnerError,
		},
		{
			name: "already released",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(closed, nil)
			},
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)
			f.clock.Advance(tt.elapsed)

			res, err := f.svc.Release(callerCtx("u-1", "alice", constant.RoleUser), "r-1")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != 0:
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			default:
				require.NoError(t, err)
				assert.InDelta(t, tt.wantHours, res.Hours, 1e-9)
				assert.InDelta(t, tt.wantCost, res.Cost, 1e-9)
				assert.False(t, res.Reservation.Active)
				assert.NotNil(t, res.Reservation.EndTime)
				assert.Equal(t, 1, f.transactor.Committed)

				return
			}

			assert.Equal(t, 0, f.transactor.Committed)
		})
	}
}

func TestReservationService_GetHistory(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
			assert.Equal(t, model.SortByStartTime, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			_, args := filter.GetWhereClause()
			assert.Equal(t, "u-1", args[model.FieldUserID])

			return []model.Reservation{
				{ID: "r-2", UserID: "u-1", StartTime: start.Add(time.Hour)},
				{ID: "r-1", UserID: "u-1", StartTime: start, EndTime: null.TimeFrom(start.Add(time.Minute))},
			}, nil
		})

	res, err := f.svc.GetHistory(callerCtx("u-1", "alice", constant.RoleUser), gDto.QueryParams{Page: 1, Limit: 2})

	assert.NoError(t, err)
	assert.Len(t, res.Reservations, 2)
	assert.True(t, res.Reservations[0].Active)
	assert.False(t, res.Reservations[1].Active)
	assert.Equal(t, gDto.Pagination{Page: 1, Limit: 2, Total: 3, TotalPage: 2}, res.Pagination)
}

func TestReservationService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gDto.FilterGroup{}).Return(nil, nil)

	res, err := f.svc.GetAll(callerCtx("a-1", "admin1", constant.RoleAdmin), gDto.QueryParams{Page: 1, Limit: 10})

	assert.NoError(t, err)
	assert.Empty(t, res.Reservations)
}

func TestReservationService_GetActive(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Reservation{}, nil)

		res, err := f.svc.GetActive(callerCtx("u-1", "alice", constant.RoleUser))
		assert.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("open reservation", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(model.Reservation{ID: "r-1", UserID: "u-1", StartTime: start, SpotNumber: null.IntFrom(3)}, nil)

		res, err := f.svc.GetActive(callerCtx("u-1", "alice", constant.RoleUser))
		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "r-1", res.ID)
		assert.Equal(t, int64(3), *res.SpotNumber)
	})
}

// newStoreBackedService wires the service to in-memory stores for workflow tests.
func newStoreBackedService(t *testing.T, lot lotModel.ParkingLot) (service.Reservation, *spotStore, *reservationStore, *clock, *metricsMocks.Metrics) {
	ctrl := gomock.NewController(t)

	lotRepo := lotMocks.NewMockLot(ctrl)
	lotRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(lot, nil).AnyTimes()
	lotRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(lot, nil).AnyTimes()

	cache := cacheMocks.NewMockRedisCache(ctrl)
	cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	publisher := mocks.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	spots := newSpotStore(lot.ID, lot.MaxSpots)
	reservations := &reservationStore{}
	clk := &clock{now: start}
	m := metricsMocks.NewMetrics()

	svc := service.NewWithClock(reservations, lotRepo, spots, pgMocks.NewTransactor(), &config.Config{}, cache,
		otelMocks.NewOtel(), publisher, m, clk.Now)

	return svc, spots, reservations, clk, m
}

func TestBook_ConcurrentLastSpot(t *testing.T) {
	lot := lotModel.ParkingLot{ID: "lot-1", Name: "Main", Price: 10, MaxSpots: 1}
	svc, spots, reservations, _, m := newStoreBackedService(t, lot)

	var (
		wg    sync.WaitGroup
		ready = make(chan struct{})
		errs  = make([]error, 2)
	)

	for i, user := range []string{"alice", "bob"} {
		wg.Add(1)

		go func() {
			defer wg.Done()
			<-ready

			_, errs[i] = svc.Book(callerCtx("id-"+user, user, constant.RoleUser), lot.ID)
		}()
	}

	close(ready)
	wg.Wait()

	succeeded := 0

	for _, err := range errs {
		if err == nil {
			succeeded++

			continue
		}

		assert.ErrorIs(t, err, failure.NoAvailabilityError)
	}

	assert.Equal(t, 1, succeeded)
	assert.Len(t, reservations.active(), 1)
	assert.Equal(t, 0, spots.available(lot.ID))
	assert.Equal(t, 1, m.BookingCount(metrics.OutcomeSuccess))
	assert.Equal(t, 1, m.BookingCount(metrics.OutcomeNoAvailability))
}

func TestParkingFlow(t *testing.T) {
	lot := lotModel.ParkingLot{ID: "lot-1", Name: "Main", Price: 5, MaxSpots: 2}
	svc, spots, reservations, clk, _ := newStoreBackedService(t, lot)

	alice := callerCtx("u-a", "alice", constant.RoleUser)
	bob := callerCtx("u-b", "bob", constant.RoleUser)
	carol := callerCtx("u-c", "carol", constant.RoleUser)

	booked, err := svc.Book(alice, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, booked.SpotNumber)
	assert.Equal(t, 1, spots.available(lot.ID))

	_, err = svc.Book(bob, lot.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, spots.available(lot.ID))

	_, err = svc.Book(carol, lot.ID)
	assert.ErrorIs(t, err, failure.NoAvailabilityError)
	assert.Len(t, reservations.active(), 2)

	_, err = svc.Book(alice, lot.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	clk.Advance(time.Hour)

	released, err := svc.Release(alice, booked.Reservation.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, released.Cost, 1e-9)
	assert.InDelta(t, 1.0, released.Hours, 1e-9)
	assert.Equal(t, spotModel.StatusAvailable, spots.status(*booked.Reservation.SpotID))
	assert.Equal(t, 1, spots.available(lot.ID))

	_, err = svc.Release(alice, booked.Reservation.ID)
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	_, err = svc.Release(carol, booked.Reservation.ID)
	assert.ErrorIs(t, err, failure.NotOwnerError)

	active, err := svc.GetActive(bob)
	require.NoError(t, err)
	require.NotNil(t, active)

	history, err := svc.GetHistory(alice, gDto.QueryParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, history.Reservations, 1)
	assert.False(t, history.Reservations[0].Active)
}
