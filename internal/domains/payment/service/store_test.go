package service_test

import (
	"context"
	"sync"

	"github.com/jmoiron/sqlx"

	bookingModel "homestay/internal/domains/booking/model"
	bookingRepository "homestay/internal/domains/booking/repository"
	reservationModel "homestay/internal/domains/reservation/model"
	reservationRepository "homestay/internal/domains/reservation/repository"
	"homestay/shared/daterange"
	gDto "homestay/shared/dto"
)

// store is an in-memory stand-in for the two tables reconciliation touches. Paired with
// the serializing mocks.Transactor it behaves like the real claim and overlap queries.
type store struct {
	mu       sync.Mutex
	intents  map[int64]reservationModel.StagedIntent
	bookings []bookingModel.Booking
}

func newStore(intents ...reservationModel.StagedIntent) *store {
	s := &store{intents: map[int64]reservationModel.StagedIntent{}}
	for _, i := range intents {
		s.intents[i.ID] = i
	}

	return s
}

func (s *store) intentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.intents)
}

func (s *store) bookingList() []bookingModel.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]bookingModel.Booking(nil), s.bookings...)
}

type intentRepo struct{ *store }

func (r intentRepo) InsertReturning(_ context.Context, m reservationModel.StagedIntent) (reservationModel.StagedIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = int64(len(r.intents) + 1)
	r.intents[m.ID] = m

	return m, nil
}

func (r intentRepo) Get(context.Context, gDto.FilterGroup, ...string) (reservationModel.StagedIntent, error) {
	return reservationModel.StagedIntent{}, nil
}

func (r intentRepo) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]reservationModel.StagedIntent, error) {
	return nil, nil
}

func (r intentRepo) Delete(context.Context, gDto.FilterGroup) (int64, error) {
	return 0, nil
}

func (r intentRepo) ClaimTx(_ context.Context, _ *sqlx.Tx, id int64, source reservationModel.Source) (reservationModel.StagedIntent, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	intent, ok := r.intents[id]
	if !ok || (source != "" && intent.Source != source) {
		return reservationModel.StagedIntent{}, false, nil
	}

	delete(r.intents, id)

	return intent, true, nil
}

type bookingRepo struct{ *store }

func (r bookingRepo) InsertTx(_ context.Context, _ *sqlx.Tx, m bookingModel.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bookings = append(r.bookings, m)

	return nil
}

func (r bookingRepo) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (bookingModel.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, args := filter.GetWhereClause()

	for _, b := range r.bookings {
		if args[bookingModel.FieldIntentID] == b.IntentID {
			return b, nil
		}
	}

	return bookingModel.Booking{}, nil
}

func (r bookingRepo) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup, ...string) ([]bookingModel.Booking, error) {
	return r.bookingList(), nil
}

func (r bookingRepo) Count(context.Context, gDto.FilterGroup) (int, error) {
	return len(r.bookingList()), nil
}

func (r bookingRepo) Update(context.Context, map[string]any, gDto.FilterGroup) (int64, error) {
	return 0, nil
}

func (r bookingRepo) HasOverlap(_ context.Context, propertyID string, dates daterange.DateRange, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ID != excludeID && b.PropertyID == propertyID && b.Status.Blocking() && b.Range().Overlaps(dates) {
			return true, nil
		}
	}

	return false, nil
}

func (r bookingRepo) HasOverlapTx(ctx context.Context, _ *sqlx.Tx, propertyID string, dates daterange.DateRange) (bool, error) {
	return r.HasOverlap(ctx, propertyID, dates, "")
}

func (r bookingRepo) LockPropertyTx(context.Context, *sqlx.Tx, string) error {
	return nil
}

var (
	_ reservationRepository.Reservation = intentRepo{}
	_ bookingRepository.Booking         = bookingRepo{}
)
