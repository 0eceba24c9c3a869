package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"parking/config"
	"parking/infras/metrics"
	"parking/infras/otel"
	"parking/infras/postgres"
	lotModel "parking/internal/domains/lot/model"
	lotRepo "parking/internal/domains/lot/repository"
	"parking/internal/domains/reservation/event"
	"parking/internal/domains/reservation/model"
	"parking/internal/domains/reservation/model/dto"
	"parking/internal/domains/reservation/repository"
	spotModel "parking/internal/domains/spot/model"
	spotRepo "parking/internal/domains/spot/repository"
	"parking/shared"
	"parking/shared/cache"
	"parking/shared/constant"
	gDto "parking/shared/dto"
	"parking/shared/failure"
	"parking/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v4"
)

var (
	errLotNotFound         = failure.NotFound("parking lot not found")
	errReservationNotFound = failure.NotFound("reservation not found")
	errActiveReservation   = failure.Conflict("you already have an active reservation")
	errAlreadyReleased     = failure.Conflict("reservation already released")
	errBookingNotAllowed   = failure.Forbidden("only users can book a spot")
)

type Reservation interface {
	Book(ctx context.Context, lotID string) (dto.BookResponse, error)
	Release(ctx context.Context, id string) (dto.ReleaseResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	GetHistory(ctx context.Context, params gDto.QueryParams) (dto.GetReservationsResponse, error)
	GetActive(ctx context.Context) (*dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo       repository.Reservation
	lotRepo    lotRepo.Lot
	spotRepo   spotRepo.Spot
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	publisher  event.Publisher
	metrics    metrics.Metrics
	now        func() time.Time
}

func New(
	repo repository.Reservation,
	lotRepo lotRepo.Lot,
	spotRepo spotRepo.Spot,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher event.Publisher,
	metrics metrics.Metrics,
) Reservation {
	return NewWithClock(repo, lotRepo, spotRepo, transactor, cfg, cache, otel, publisher, metrics, timezone.Now)
}

func NewWithClock(
	repo repository.Reservation,
	lotRepo lotRepo.Lot,
	spotRepo spotRepo.Spot,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	publisher event.Publisher,
	metrics metrics.Metrics,
	now func() time.Time,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		lotRepo:    lotRepo,
		spotRepo:   spotRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		publisher:  publisher,
		metrics:    metrics,
		now:        now,
	}
}

// Book claims the lowest-numbered available spot of the lot for the caller.
func (s *serviceImpl) Book(ctx context.Context, lotID string) (res dto.BookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()
	defer func() { s.metrics.ObserveBooking(outcomeOf(err)) }()

	userID, username, role := callerFromContext(ctx)
	if role != constant.RoleUser {
		return res, errBookingNotAllowed
	}

	lot, err := s.lotRepo.Get(ctx, shared.FilterByID(lotID, lotModel.FieldID, lotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lot")

		return res, fmt.Errorf("failed to get lot: %w", err)
	}

	if lot.ID == constant.Empty {
		return res, errLotNotFound
	}

	active, err := s.repo.Exist(ctx, repository.FilterActiveByUser(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to check active reservation")

		return res, fmt.Errorf("failed to check active reservation: %w", err)
	}

	if active {
		return res, errActiveReservation
	}

	var (
		spot        spotModel.ParkingSpot
		reservation model.Reservation
	)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error

		spot, err = s.spotRepo.ClaimAvailableTx(ctx, tx, lot.ID, username)
		if err != nil {
			log.Error().Err(err).Msg("failed to claim spot")

			return fmt.Errorf("failed to claim spot: %w", err)
		}

		if spot.ID == constant.Empty {
			return failure.NoAvailabilityError
		}

		reservation = dto.NewReservation(userID, spot.ID, lot.ID, lot.Price, username, s.now())

		if err = s.repo.InsertTx(ctx, tx, reservation); err != nil {
			switch {
			case postgres.IsUniqueViolation(err, model.ConstraintActiveUser):
				return errActiveReservation
			case postgres.IsUniqueViolation(err, model.ConstraintActiveSpot):
				return failure.NoAvailabilityError
			case postgres.IsForeignKeyViolation(err):
				return errLotNotFound
			}

			log.Error().Err(err).Msg("failed to create reservation")

			return fmt.Errorf("failed to create reservation: %w", err)
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	reservation.SpotNumber = null.IntFrom(int64(spot.Number))
	reservation.LotName = null.StringFrom(lot.Name)
	reservation.Username = null.StringFrom(username)

	log.Info().Str("reservation", reservation.ID).Str("lot", lot.ID).Int("spot", spot.Number).Msg("spot booked")

	s.afterChange(ctx, lot.ID, event.New(event.TypeBooked, reservation, 0))

	res.Reservation.FromModel(reservation)
	res.SpotNumber = spot.Number

	return res, nil
}

// Release closes the caller's active reservation, bills it and frees the spot.
func (s *serviceImpl) Release(ctx context.Context, id string) (res dto.ReleaseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Release")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var (
		reservation model.Reservation
		hours       float64
		price       float64
	)

	defer func() { s.metrics.ObserveRelease(outcomeOf(err), hours, reservation.Cost) }()

	userID, username, _ := callerFromContext(ctx)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error

		reservation, err = s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get reservation")

			return fmt.Errorf("failed to get reservation: %w", err)
		}

		if reservation.ID == constant.Empty {
			return errReservationNotFound
		}

		if reservation.UserID != userID {
			return failure.NotOwnerError
		}

		if !reservation.IsActive() {
			return errAlreadyReleased
		}

		price, err = s.priceOf(ctx, tx, reservation)
		if err != nil {
			return err
		}

		end := s.now()
		hours, reservation.Cost = CalculateCost(reservation.StartTime, end, price)
		reservation.EndTime = null.TimeFrom(end)

		err = s.repo.UpdateTx(ctx, tx, map[string]any{
			model.FieldEndTime:       end,
			model.FieldCost:          reservation.Cost,
			constant.FieldModifiedAt: end,
			constant.FieldModifiedBy: username,
		}, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to close reservation")

			return fmt.Errorf("failed to close reservation: %w", err)
		}

		if !reservation.SpotID.Valid {
			return nil
		}

		freed, err := s.spotRepo.SetStatusTx(ctx, tx, reservation.SpotID.String, spotModel.StatusOccupied, spotModel.StatusAvailable, username)
		if err != nil {
			log.Error().Err(err).Msg("failed to free spot")

			return fmt.Errorf("failed to free spot: %w", err)
		}

		if !freed {
			log.Warn().Str("spot", reservation.SpotID.String).Msg("released reservation on a spot that was not occupied")
		}

		return nil
	})
	if err != nil {
		return res, err
	}

	log.Info().Str("reservation", reservation.ID).Float64("hours", hours).Float64("cost", reservation.Cost).Msg("spot released")

	s.afterChange(ctx, reservation.LotID.String, event.New(event.TypeReleased, reservation, hours))

	res.Reservation.FromModel(reservation)
	res.Hours = hours
	res.Cost = reservation.Cost
	res.Price = price

	return res, nil
}

// priceOf is the lot's current hourly price, or the price stored at booking if the lot is gone.
func (s *serviceImpl) priceOf(ctx context.Context, tx *sqlx.Tx, reservation model.Reservation) (float64, error) {
	if !reservation.LotID.Valid {
		return reservation.Cost, nil
	}

	lot, err := s.lotRepo.GetTx(ctx, tx, shared.FilterByID(reservation.LotID.String, lotModel.FieldID, lotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lot")

		return 0, fmt.Errorf("failed to get lot: %w", err)
	}

	if lot.ID == constant.Empty {
		return reservation.Cost, nil
	}

	return lot.Price, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.list(ctx, params, gDto.FilterGroup{})
}

func (s *serviceImpl) GetHistory(ctx context.Context, params gDto.QueryParams) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHistory")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _, _ := callerFromContext(ctx)

	return s.list(ctx, params, repository.FilterByUser(userID))
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	params.SortBy = model.SortByStartTime
	params.SortDir = gDto.SortDirDesc

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(reservations, params, total, shared.CalculateTotalPage(total, params.Limit))

	return res, nil
}

// GetActive returns the caller's open reservation or nil.
func (s *serviceImpl) GetActive(ctx context.Context) (res *dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetActive")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _, _ := callerFromContext(ctx)

	reservation, err := s.repo.Get(ctx, repository.FilterActiveByUser(userID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get active reservation")

		return nil, fmt.Errorf("failed to get active reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return nil, nil
	}

	res = &dto.ReservationResponse{}
	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) afterChange(ctx context.Context, lotID string, evt event.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if lotID != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheGetLot, lotID)); err != nil {
				log.Error().Err(err).Msg("failed to delete lot cache")
			}

			if err := s.cache.Delete(c, shared.BuildCacheKey(constant.CacheGetSpots, lotID)); err != nil {
				log.Error().Err(err).Msg("failed to delete spots cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, constant.CacheGetAllLot)

		_ = s.publisher.Publish(c, evt)
	}()
}

func callerFromContext(ctx context.Context) (userID, username, role string) {
	userID, _ = ctx.Value(constant.ContextKeyUserID).(string)
	username, _ = ctx.Value(constant.ContextKeyUsername).(string)
	role, _ = ctx.Value(constant.ContextKeyUserRole).(string)

	return userID, username, role
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, failure.NoAvailabilityError):
		return metrics.OutcomeNoAvailability
	}

	switch code := failure.GetCode(err); {
	case code == http.StatusConflict:
		return metrics.OutcomeConflict
	case code < http.StatusInternalServerError:
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}
