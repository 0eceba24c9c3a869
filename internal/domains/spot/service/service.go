package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Spot=MockSpotService

import (
	"context"
	"fmt"
	"parking/config"
	"parking/infras/otel"
	"parking/infras/postgres"
	lotModel "parking/internal/domains/lot/model"
	lotRepo "parking/internal/domains/lot/repository"
	"parking/internal/domains/spot/model"
	"parking/internal/domains/spot/model/dto"
	"parking/internal/domains/spot/repository"
	"parking/shared"
	"parking/shared/cache"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/failure"
	"parking/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	errLotNotFound  = failure.NotFound("parking lot not found")
	errLastSpotLeft = failure.Conflict("cannot delete the last spot of a lot, delete the lot instead")
)

type Spot interface {
	GetAllByLot(ctx context.Context, lotID string) (dto.GetSpotsResponse, error)
	FindFree(ctx context.Context, lotID string) (dto.SpotResponse, error)
	GetAllWithReservations(ctx context.Context, lotID string) (dto.GetSpotReservationsResponse, error)
	Delete(ctx context.Context, lotID, spotID string) error
}

type serviceImpl struct {
	repo       repository.Spot
	lotRepo    lotRepo.Lot
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Spot, lotRepo lotRepo.Lot, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Spot {
	return &serviceImpl{
		repo:       repo,
		lotRepo:    lotRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) GetAllByLot(ctx context.Context, lotID string) (res dto.GetSpotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllByLot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(constant.CacheGetSpots, lotID)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for spots")

		return res, nil
	}

	if err = s.ensureLot(ctx, lotID); err != nil {
		return res, err
	}

	spots, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldNumber, SortDir: gDto.SortDirAsc}, repository.FilterByLot(lotID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get spots")

		return res, fmt.Errorf("failed to get spots: %w", err)
	}

	res.FromModels(spots)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save spots to cache")
		}
	}()

	return res, nil
}

// FindFree returns the lowest-numbered available spot of the lot without claiming it.
func (s *serviceImpl) FindFree(ctx context.Context, lotID string) (res dto.SpotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindFree")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLot(ctx, lotID); err != nil {
		return res, err
	}

	spots, err := s.repo.GetAll(ctx,
		gDto.QueryParams{Limit: 1, SortBy: model.FieldNumber, SortDir: gDto.SortDirAsc},
		repository.FilterByLotAndStatus(lotID, model.StatusAvailable),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to find free spot")

		return res, fmt.Errorf("failed to find free spot: %w", err)
	}

	if len(spots) == 0 {
		return res, failure.NotFound("no free spot in this lot")
	}

	res.FromModel(spots[0])

	return res, nil
}

func (s *serviceImpl) GetAllWithReservations(ctx context.Context, lotID string) (res dto.GetSpotReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllWithReservations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureLot(ctx, lotID); err != nil {
		return res, err
	}

	spots, err := s.repo.GetAllWithLatestReservation(ctx, lotID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get spots with reservations")

		return res, fmt.Errorf("failed to get spots with reservations: %w", err)
	}

	res.FromModels(lotID, spots)

	return res, nil
}

// Delete removes an available spot of the lot and shrinks the lot's capacity by one.
func (s *serviceImpl) Delete(ctx context.Context, lotID, spotID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUsername).(string)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		lot, err := s.lotRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(lotID, lotModel.FieldID, lotModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get lot")

			return fmt.Errorf("failed to get lot: %w", err)
		}

		if lot.ID == constant.Empty {
			return errLotNotFound
		}

		spot, err := s.repo.GetForUpdateTx(ctx, tx, repository.FilterByLotAndID(lotID, spotID))
		if err != nil {
			log.Error().Err(err).Msg("failed to get spot")

			return fmt.Errorf("failed to get spot: %w", err)
		}

		if spot.ID == constant.Empty {
			return failure.NotFound("parking spot not found")
		}

		if !spot.IsAvailable() {
			return failure.SpotOccupiedError
		}

		if lot.MaxSpots <= 1 {
			return errLastSpotLeft
		}

		if err := s.repo.DeleteTx(ctx, tx, shared.FilterByID(spot.ID, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete spot")

			return fmt.Errorf("failed to delete spot: %w", err)
		}

		return s.lotRepo.UpdateTx(ctx, tx, map[string]any{
			lotModel.FieldMaxSpots:   lot.MaxSpots - 1,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: user,
		}, shared.FilterByID(lotID, lotModel.FieldID, lotModel.TableName))
	})
	if err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheGetSpots, lotID)); err != nil {
			log.Error().Err(err).Msg("failed to delete spots cache")
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheGetLot)
		shared.InvalidateCaches(c, s.cache, constant.CacheGetAllLot)
	}()

	return nil
}

func (s *serviceImpl) ensureLot(ctx context.Context, lotID string) error {
	exist, err := s.lotRepo.Exist(ctx, shared.FilterByID(lotID, lotModel.FieldID, lotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if lot exists")

		return fmt.Errorf("failed to check if lot exists: %w", err)
	}

	if !exist {
		return errLotNotFound
	}

	return nil
}
