package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Lot=MockLotService

import (
	"context"
	"fmt"
	"mime/multipart"
	"parking/config"
	"parking/infras/otel"
	"parking/infras/postgres"
	"parking/infras/s3"
	"parking/internal/domains/lot/model"
	"parking/internal/domains/lot/model/dto"
	"parking/internal/domains/lot/repository"
	spotModel "parking/internal/domains/spot/model"
	spotRepo "parking/internal/domains/spot/repository"
	"parking/shared"
	"parking/shared/cache"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/failure"
	"parking/shared/timezone"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	errLotNotFound    = failure.NotFound("parking lot not found")
	errLotOccupied    = failure.Conflict("cannot delete a lot with occupied spots")
	errShrinkOccupied = failure.Conflict("not enough available spots to reduce max_spots")
)

type Lot interface {
	Create(ctx context.Context, req dto.CreateLotRequest) (dto.LotResponse, error)
	Get(ctx context.Context, id string) (dto.LotAvailabilityResponse, error)
	GetAll(ctx context.Context) (dto.GetLotsResponse, error)
	Update(ctx context.Context, req dto.UpdateLotRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Lot
	spotRepo   spotRepo.Spot
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	s3         s3.S3
}

func New(
	repo repository.Lot,
	spotRepo spotRepo.Spot,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Lot {
	return &serviceImpl{
		repo:       repo,
		spotRepo:   spotRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		s3:         s3,
	}
}

// Create stores the lot and its max_spots available spots numbered from 1 in one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLotRequest) (res dto.LotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	imageURL, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return res, err
	}

	lot := req.ToModel(user, imageURL)
	spots := spotModel.NewSpots(lot.ID, 0, lot.MaxSpots, user, lot.CreatedAt, uuid.NewString)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, lot); err != nil {
			log.Error().Err(err).Msg("failed to create lot")

			return fmt.Errorf("failed to create lot: %w", err)
		}

		if err := s.spotRepo.InsertBulkTx(ctx, tx, spots); err != nil {
			log.Error().Err(err).Msg("failed to create spots")

			return fmt.Errorf("failed to create spots: %w", err)
		}

		return nil
	})
	if err != nil {
		s.deleteImage(ctx, objectName)

		return res, err
	}

	s.invalidate(ctx, lot.ID)

	res.FromModel(lot)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LotAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheGetLot, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lot")

		return res, nil
	}

	lots, err := s.repo.GetAllAvailability(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lot")

		return res, fmt.Errorf("failed to get lot: %w", err)
	}

	if len(lots) == 0 {
		return res, errLotNotFound
	}

	res.FromModel(lots[0])

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetLotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := constant.CacheGetAllLot

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lots")

		return res, nil
	}

	lots, err := s.repo.GetAllAvailability(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get lots")

		return res, fmt.Errorf("failed to get lots: %w", err)
	}

	res.FromModels(lots)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lots to cache")
		}
	}()

	return res, nil
}

// Update applies a partial update. A new max_spots appends spots after the highest number
// or removes the highest-numbered available ones.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateLotRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	imageURL, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
	if err != nil {
		return err
	}

	var current model.ParkingLot

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		current, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get lot")

			return fmt.Errorf("failed to get lot: %w", err)
		}

		if current.ID == constant.Empty {
			return errLotNotFound
		}

		if req.MaxSpots != 0 && req.MaxSpots != current.MaxSpots {
			if err := s.resizeTx(ctx, tx, current, req.MaxSpots, user); err != nil {
				return err
			}
		}

		updatedFields := shared.TransformFields(req, user)
		if imageURL != constant.Empty {
			updatedFields[model.FieldImage] = imageURL
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update lot")

			return fmt.Errorf("failed to update lot: %w", err)
		}

		return nil
	})
	if err != nil {
		s.deleteImage(ctx, objectName)

		return err
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		s.deleteImage(ctx, s.s3.GetObjectNameFromURL(model.EntityName, current.Image))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) resizeTx(ctx context.Context, tx *sqlx.Tx, lot model.ParkingLot, target int, user string) error {
	if target > lot.MaxSpots {
		last, err := s.spotRepo.MaxNumberTx(ctx, tx, lot.ID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get last spot number")

			return fmt.Errorf("failed to get last spot number: %w", err)
		}

		spots := spotModel.NewSpots(lot.ID, last, target-lot.MaxSpots, user, timezone.Now(), uuid.NewString)
		if err := s.spotRepo.InsertBulkTx(ctx, tx, spots); err != nil {
			log.Error().Err(err).Msg("failed to add spots")

			return fmt.Errorf("failed to add spots: %w", err)
		}

		return nil
	}

	count := lot.MaxSpots - target

	removed, err := s.spotRepo.DeleteHighestAvailableTx(ctx, tx, lot.ID, count)
	if err != nil {
		log.Error().Err(err).Msg("failed to remove spots")

		return fmt.Errorf("failed to remove spots: %w", err)
	}

	if removed < count {
		return errShrinkOccupied
	}

	return nil
}

// Delete removes a lot whose spots are all available. Spots cascade; past reservations keep
// their history with the spot and lot references cleared.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	var lot model.ParkingLot

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		lot, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get lot")

			return fmt.Errorf("failed to get lot: %w", err)
		}

		if lot.ID == constant.Empty {
			return errLotNotFound
		}

		occupied, err := s.spotRepo.CountTx(ctx, tx, spotRepo.FilterByLotAndStatus(id, spotModel.StatusOccupied))
		if err != nil {
			log.Error().Err(err).Msg("failed to count occupied spots")

			return fmt.Errorf("failed to count occupied spots: %w", err)
		}

		if occupied > 0 {
			return errLotOccupied
		}

		if err := s.repo.DeleteTx(ctx, tx, filter); err != nil {
			log.Error().Err(err).Msg("failed to delete lot")

			return fmt.Errorf("failed to delete lot: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if lot.Image != constant.Empty {
		s.deleteImage(ctx, s.s3.GetObjectNameFromURL(model.EntityName, lot.Image))
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (url, objectName string, err error) {
	if header == nil || file == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = uuid.NewString() + filepath.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, model.EntityName, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload lot image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, model.EntityName, objectName); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to delete lot image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheGetLot, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete lot cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheGetSpots, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete spots cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheGetAllLot)
	}()
}
