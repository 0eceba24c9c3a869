package service_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"parking/config"
	otelMocks "parking/infras/otel/mocks"
	pgMocks "parking/infras/postgres/mocks"
	s3Mocks "parking/infras/s3/mocks"
	"parking/internal/domains/lot/mocks"
	"parking/internal/domains/lot/model"
	"parking/internal/domains/lot/model/dto"
	"parking/internal/domains/lot/service"
	spotMocks "parking/internal/domains/spot/mocks"
	spotModel "parking/internal/domains/spot/model"
	"parking/shared/cache"
	cacheMocks "parking/shared/cache/mocks"
	"parking/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo       *mocks.MockLot
	spotRepo   *spotMocks.MockSpot
	cache      *cacheMocks.MockRedisCache
	s3         *s3Mocks.MockS3
	transactor *pgMocks.Transactor
	svc        service.Lot
}

type imageFile struct {
	*bytes.Reader
}

func (imageFile) Close() error { return nil }

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       mocks.NewMockLot(ctrl),
		spotRepo:   spotMocks.NewMockSpot(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		s3:         s3Mocks.NewMockS3(ctrl),
		transactor: pgMocks.NewTransactor(),
	}

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.spotRepo, f.transactor, &config.Config{}, f.cache, otelMocks.NewOtel(), f.s3)

	return f
}

func spotNumbers(spots []spotModel.ParkingSpot) []int {
	numbers := make([]int, len(spots))
	for i, s := range spots {
		numbers[i] = s.Number
	}

	return numbers
}

func TestLotService_Create(t *testing.T) {
	image := &multipart.FileHeader{Filename: "lot.png"}

	tests := []struct {
		name          string
		req           dto.CreateLotRequest
		setupMock     func(f fixture)
		wantErr       bool
		wantImage     string
		wantCommitted int
	}{
		{
			name: "creates lot with all spots available",
			req:  dto.CreateLotRequest{Name: "Main", Address: "1 Street", PinCode: "123456", Price: 5, MaxSpots: 3},
			setupMock: func(f fixture) {
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.spotRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, spots []spotModel.ParkingSpot) error {
						assert.Equal(t, []int{1, 2, 3}, spotNumbers(spots))

						for _, s := range spots {
							assert.Equal(t, spotModel.StatusAvailable, s.Status)
						}

						return nil
					})
			},
			wantCommitted: 1,
		},
		{
			name: "uploads image",
			req: dto.CreateLotRequest{
				Name: "Main", Address: "1 Street", PinCode: "123456", Price: 5, MaxSpots: 1,
				Image: image, ImageFile: imageFile{bytes.NewReader([]byte("png"))},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), model.EntityName, gomock.Any(), image, gomock.Any()).
					Return("https://cdn.example.com/lot/abc.png", nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.spotRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantImage:     "https://cdn.example.com/lot/abc.png",
			wantCommitted: 1,
		},
		{
			name: "spot insert fails and image is removed",
			req: dto.CreateLotRequest{
				Name: "Main", Address: "1 Street", PinCode: "123456", Price: 5, MaxSpots: 2,
				Image: image, ImageFile: imageFile{bytes.NewReader([]byte("png"))},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/lot/abc.png", nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.spotRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), model.EntityName, gomock.Any()).Return(nil)
			},
			wantErr: true,
		},
		{
			name: "upload fails",
			req: dto.CreateLotRequest{
				Name: "Main", Address: "1 Street", PinCode: "123456", Price: 5, MaxSpots: 2,
				Image: image, ImageFile: imageFile{bytes.NewReader([]byte("png"))},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("", errors.New("s3 down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, f.transactor.Committed)

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.MaxSpots, res.MaxSpots)
			assert.Equal(t, tt.wantImage, res.Image)
			assert.Equal(t, tt.wantCommitted, f.transactor.Committed)
		})
	}
}

func TestLotService_Update(t *testing.T) {
	current := model.ParkingLot{ID: "lot-1", Name: "Main", Price: 5, MaxSpots: 3, Image: "https://cdn.example.com/lot/old.png"}

	tests := []struct {
		name      string
		req       dto.UpdateLotRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "rename only",
			req:  dto.UpdateLotRequest{Name: "North"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
						assert.Equal(t, "North", fields[model.FieldName])
						assert.NotContains(t, fields, model.FieldMaxSpots)

						return nil
					})
			},
		},
		{
			name: "grow appends after highest number",
			req:  dto.UpdateLotRequest{MaxSpots: 5},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
				f.spotRepo.EXPECT().MaxNumberTx(gomock.Any(), gomock.Any(), "lot-1").Return(4, nil)
				f.spotRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, spots []spotModel.ParkingSpot) error {
						assert.Equal(t, []int{5, 6}, spotNumbers(spots))

						return nil
					})
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "shrink removes available spots",
			req:  dto.UpdateLotRequest{MaxSpots: 1},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
				f.spotRepo.EXPECT().DeleteHighestAvailableTx(gomock.Any(), gomock.Any(), "lot-1", 2).Return(2, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "shrink blocked by occupied spots",
			req:  dto.UpdateLotRequest{MaxSpots: 1},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
				f.spotRepo.EXPECT().DeleteHighestAvailableTx(gomock.Any(), gomock.Any(), "lot-1", 2).Return(1, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "new image replaces old one",
			req: dto.UpdateLotRequest{
				Image:     &multipart.FileHeader{Filename: "new.jpg"},
				ImageFile: imageFile{bytes.NewReader([]byte("jpg"))},
			},
			setupMock: func(f fixture) {
				f.s3.EXPECT().UploadFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/lot/new.jpg", nil)
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ any) error {
						assert.Equal(t, "https://cdn.example.com/lot/new.jpg", fields[model.FieldImage])

						return nil
					})
				f.s3.EXPECT().GetObjectNameFromURL(model.EntityName, current.Image).Return("old.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), model.EntityName, "old.png").Return(nil)
			},
		},
		{
			name: "unknown lot",
			req:  dto.UpdateLotRequest{Name: "North"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.ParkingLot{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(context.Background(), tt.req, "lot-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, 0, f.transactor.Committed)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 1, f.transactor.Committed)
		})
	}
}

func TestLotService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "all spots available",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.ParkingLot{ID: "lot-1"}, nil)
				f.spotRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "occupied spot blocks deletion",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.ParkingLot{ID: "lot-1"}, nil)
				f.spotRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(1, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown lot",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.ParkingLot{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "image removed after delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.ParkingLot{ID: "lot-1", Image: "https://cdn.example.com/lot/a.png"}, nil)
				f.spotRepo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.s3.EXPECT().GetObjectNameFromURL(model.EntityName, gomock.Any()).Return("a.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), model.EntityName, "a.png").Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "lot-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestLotService_Get(t *testing.T) {
	t.Run("returns availability", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetAllAvailability(gomock.Any(), gomock.Any()).Return([]model.LotAvailability{
			{ParkingLot: model.ParkingLot{ID: "lot-1", Name: "Main", MaxSpots: 2}, Available: 1, Occupied: 1},
		}, nil)

		res, err := f.svc.Get(context.Background(), "lot-1")
		assert.NoError(t, err)
		assert.Equal(t, "Main", res.Name)
		assert.Equal(t, 1, res.Available)
		assert.Equal(t, 1, res.Occupied)
	})

	t.Run("unknown lot", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetAllAvailability(gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := f.svc.Get(context.Background(), "lot-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestLotService_GetAll(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, _ := value.(*dto.GetLotsResponse)
				res.Lots = []dto.LotAvailabilityResponse{{Available: 2}}

				return nil
			})

		res, err := f.svc.GetAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, res.Lots, 1)
	})

	t.Run("cache miss", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
		f.repo.EXPECT().GetAllAvailability(gomock.Any(), gomock.Any()).Return([]model.LotAvailability{
			{ParkingLot: model.ParkingLot{ID: "lot-1"}, Available: 2},
			{ParkingLot: model.ParkingLot{ID: "lot-2"}, Occupied: 1},
		}, nil)

		res, err := f.svc.GetAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, res.Lots, 2)
	})
}
