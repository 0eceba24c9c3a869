package service_test

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"parking/internal/domains/reservation/model"
	spotModel "parking/internal/domains/spot/model"
	gDto "parking/shared/dto"

	"github.com/jmoiron/sqlx"
)

var errNotSupported = errors.New("not supported by fake")

// spotStore is an in-memory spot table whose claim is atomic like the guarded UPDATE.
type spotStore struct {
	mu    sync.Mutex
	spots []spotModel.ParkingSpot
}

func newSpotStore(lotID string, count int) *spotStore {
	seq := 0
	newID := func() string {
		seq++

		return lotID + "-spot-" + strconv.Itoa(seq)
	}

	return &spotStore{spots: spotModel.NewSpots(lotID, 0, count, "admin1", time.Now(), newID)}
}

func (s *spotStore) available(lotID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, spot := range s.spots {
		if spot.LotID == lotID && spot.IsAvailable() {
			count++
		}
	}

	return count
}

func (s *spotStore) status(id string) spotModel.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, spot := range s.spots {
		if spot.ID == id {
			return spot.Status
		}
	}

	return ""
}

func (s *spotStore) ClaimAvailableTx(_ context.Context, _ *sqlx.Tx, lotID, _ string) (spotModel.ParkingSpot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.Slice(s.spots, func(i, j int) bool { return s.spots[i].Number < s.spots[j].Number })

	for i := range s.spots {
		if s.spots[i].LotID == lotID && s.spots[i].IsAvailable() {
			s.spots[i].Status = spotModel.StatusOccupied

			return s.spots[i], nil
		}
	}

	return spotModel.ParkingSpot{}, nil
}

func (s *spotStore) SetStatusTx(_ context.Context, _ *sqlx.Tx, id string, from, to spotModel.Status, _ string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.spots {
		if s.spots[i].ID == id && s.spots[i].Status == from {
			s.spots[i].Status = to

			return true, nil
		}
	}

	return false, nil
}

func (s *spotStore) Get(context.Context, gDto.FilterGroup, ...string) (spotModel.ParkingSpot, error) {
	return spotModel.ParkingSpot{}, errNotSupported
}

func (s *spotStore) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]spotModel.ParkingSpot, error) {
	return nil, errNotSupported
}

func (s *spotStore) GetForUpdateTx(context.Context, *sqlx.Tx, gDto.FilterGroup, ...string) (spotModel.ParkingSpot, error) {
	return spotModel.ParkingSpot{}, errNotSupported
}

func (s *spotStore) Exist(context.Context, gDto.FilterGroup) (bool, error) {
	return false, errNotSupported
}

func (s *spotStore) CountTx(context.Context, *sqlx.Tx, gDto.FilterGroup) (int, error) {
	return 0, errNotSupported
}

func (s *spotStore) InsertBulkTx(context.Context, *sqlx.Tx, []spotModel.ParkingSpot) error {
	return errNotSupported
}

func (s *spotStore) DeleteTx(context.Context, *sqlx.Tx, gDto.FilterGroup) error {
	return errNotSupported
}

func (s *spotStore) MaxNumberTx(context.Context, *sqlx.Tx, string) (int, error) {
	return 0, errNotSupported
}

func (s *spotStore) DeleteHighestAvailableTx(context.Context, *sqlx.Tx, string, int) (int, error) {
	return 0, errNotSupported
}

func (s *spotStore) GetAllWithLatestReservation(context.Context, string) ([]spotModel.SpotReservation, error) {
	return nil, errNotSupported
}

// reservationStore understands the id, user and active filters the service builds.
type reservationStore struct {
	mu           sync.Mutex
	reservations []model.Reservation
}

func (r *reservationStore) match(filter gDto.FilterGroup) []model.Reservation {
	where, args := filter.GetWhereClause()
	activeOnly := strings.Contains(where, model.FieldEndTime+" IS NULL")

	var out []model.Reservation

	for _, res := range r.reservations {
		if id, ok := args[model.FieldID]; ok && res.ID != id {
			continue
		}

		if userID, ok := args[model.FieldUserID]; ok && res.UserID != userID {
			continue
		}

		if activeOnly && !res.IsActive() {
			continue
		}

		out = append(out, res)
	}

	return out
}

func (r *reservationStore) active() []model.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()

	return slices.DeleteFunc(slices.Clone(r.reservations), func(res model.Reservation) bool { return !res.IsActive() })
}

func (r *reservationStore) InsertTx(_ context.Context, _ *sqlx.Tx, res model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reservations = append(r.reservations, res)

	return nil
}

func (r *reservationStore) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if found := r.match(filter); len(found) > 0 {
		return found[0], nil
	}

	return model.Reservation{}, nil
}

func (r *reservationStore) GetForUpdateTx(ctx context.Context, _ *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Reservation, error) {
	return r.Get(ctx, filter, columns...)
}

func (r *reservationStore) GetAll(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.match(filter), nil
}

func (r *reservationStore) Exist(_ context.Context, filter gDto.FilterGroup) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.match(filter)) > 0, nil
}

func (r *reservationStore) Count(_ context.Context, filter gDto.FilterGroup) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.match(filter)), nil
}

func (r *reservationStore) UpdateTx(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, args := filter.GetWhereClause()

	for i := range r.reservations {
		if r.reservations[i].ID != args[model.FieldID] {
			continue
		}

		if end, ok := fields[model.FieldEndTime].(time.Time); ok {
			r.reservations[i].EndTime.SetValid(end)
		}

		if cost, ok := fields[model.FieldCost].(float64); ok {
			r.reservations[i].Cost = cost
		}
	}

	return nil
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}
