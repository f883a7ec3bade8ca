package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"homestay/config"
	"homestay/infras/metrics"
	otelMocks "homestay/infras/otel/mocks"
	"homestay/internal/domains/booking/event"
	bookingMocks "homestay/internal/domains/booking/mocks"
	"homestay/internal/domains/booking/model"
	"homestay/internal/domains/booking/model/dto"
	"homestay/internal/domains/booking/service"
	cacheMocks "homestay/shared/cache/mocks"
	"homestay/shared/constant"
	"homestay/shared/daterange"
	gDto "homestay/shared/dto"
	"homestay/shared/timezone"
)

var now = time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)

var (
	owner = model.Actor{UserID: "u-1", Role: constant.RoleUser}
	other = model.Actor{UserID: "u-2", Role: constant.RoleUser}
	admin = model.Actor{UserID: "a-1", Role: constant.RoleAdmin}
	staff = model.Actor{UserID: "s-1", Role: constant.RoleStaff}
)

type fixture struct {
	repo      *bookingMocks.MockBooking
	cache     *cacheMocks.MockRedisCache
	publisher *bookingMocks.MockPublisher
	svc       service.Booking
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f := fixture{
		repo:      bookingMocks.NewMockBooking(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		publisher: bookingMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, cfg, f.cache, otelMocks.NewOtel(), timezone.NewFixed(now), metrics.New(), f.publisher)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func booking(status model.Status) model.Booking {
	return model.Booking{
		ID:         "b-1",
		PropertyID: "p-1",
		UserID:     owner.UserID,
		IntentID:   7,
		CheckIn:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		Guests:     2,
		TotalPrice: 1000000,
		Status:     status,
	}
}

// statefulRepo backs Get and Update with a single row so sequential transitions see each
// other's effect.
func statefulRepo(f fixture, row *model.Booking) {
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, gDto.FilterGroup, ...string) (model.Booking, error) {
			return *row, nil
		}).AnyTimes()

	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, mod map[string]any, filter gDto.FilterGroup) (int64, error) {
			_, args := filter.GetWhereClause()

			for name, v := range args {
				if len(name) > len("from_status") && name[:len("from_status")] == "from_status" && v == string(row.Status) {
					row.Status = model.Status(mod[model.FieldStatus].(string))

					return 1, nil
				}
			}

			return 0, nil
		}).AnyTimes()
}

func TestBookingService_IsAvailable(t *testing.T) {
	dates := daterange.New(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC))

	t.Run("free range", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().HasOverlap(gomock.Any(), "p-1", dates, "").Return(false, nil)

		ok, err := f.svc.IsAvailable(context.Background(), "p-1", dates, "")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("overlapping booking", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().HasOverlap(gomock.Any(), "p-1", dates, "b-9").Return(true, nil)

		ok, err := f.svc.IsAvailable(context.Background(), "p-1", dates, "b-9")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty range", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.IsAvailable(context.Background(), "p-1", daterange.New(dates.CheckIn, dates.CheckIn), "")
		assert.ErrorIs(t, err, daterange.ErrEmptyRange)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().HasOverlap(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))

		_, err := f.svc.IsAvailable(context.Background(), "p-1", dates, "")
		assert.Error(t, err)
	})
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		actor     model.Actor
		stored    model.Booking
		expectErr error
	}{
		{name: "owner", actor: owner, stored: booking(model.StatusPending)},
		{name: "staff sees any booking", actor: staff, stored: booking(model.StatusPending)},
		{name: "other user", actor: other, stored: booking(model.StatusPending), expectErr: model.ErrBookingNotFound},
		{name: "missing", actor: admin, stored: model.Booking{}, expectErr: model.ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("redis: nil"))
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)

			res, err := f.svc.Get(context.Background(), "b-1", tt.actor)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", res.ID)
			assert.Equal(t, 2, res.Nights)
			assert.Equal(t, "2025-01-10", res.CheckIn)
		})
	}

	t.Run("cache hit skips repository", func(t *testing.T) {
		f := setup(t)
		f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).
			SetArg(2, dto.BookingResponse{ID: "b-1", UserID: owner.UserID}).
			Return(nil)

		res, err := f.svc.Get(context.Background(), "b-1", owner)
		require.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
	})
}

func TestBookingService_GetMine(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			_, args := filter.GetWhereClause()
			assert.Equal(t, owner.UserID, args[model.FieldUserID])

			return 11, nil
		})
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Empty(t, params.SortBy, "unknown sort column must be dropped")

			return []model.Booking{booking(model.StatusPending)}, nil
		})

	res, err := f.svc.GetMine(context.Background(), owner.UserID, gDto.QueryParams{Page: 1, Limit: 10, SortBy: "password"})
	require.NoError(t, err)
	assert.Len(t, res.Bookings, 1)
	assert.Equal(t, 11, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
}

func TestBookingService_GetAll(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{}, nil)

	res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, dto.ListFilter{Status: "pending"})
	require.NoError(t, err)
	assert.Empty(t, res.Bookings)
	assert.Equal(t, 1, res.TotalPage)
}

func TestBookingService_Transition(t *testing.T) {
	tests := []struct {
		name      string
		from      model.Status
		action    model.Action
		actor     model.Actor
		expected  model.Status
		expectErr error
	}{
		{name: "owner cancels pending", from: model.StatusPending, action: model.ActionCancel, actor: owner, expected: model.StatusCancelled},
		{name: "owner cancels confirmed", from: model.StatusConfirmed, action: model.ActionCancel, actor: owner, expected: model.StatusCancelled},
		{name: "admin approves", from: model.StatusPending, action: model.ActionApprove, actor: admin, expected: model.StatusConfirmed},
		{name: "staff rejects", from: model.StatusPending, action: model.ActionReject, actor: staff, expected: model.StatusRejected},
		{name: "staff completes", from: model.StatusConfirmed, action: model.ActionComplete, actor: staff, expected: model.StatusCompleted},
		{name: "other user cannot cancel", from: model.StatusPending, action: model.ActionCancel, actor: other, expectErr: model.ErrInvalidTransition},
		{name: "admin cannot cancel for owner", from: model.StatusPending, action: model.ActionCancel, actor: admin, expectErr: model.ErrInvalidTransition},
		{name: "user cannot approve", from: model.StatusPending, action: model.ActionApprove, actor: owner, expectErr: model.ErrInvalidTransition},
		{name: "completed is terminal", from: model.StatusCompleted, action: model.ActionCancel, actor: owner, expectErr: model.ErrInvalidTransition},
		{name: "rejected cannot be approved", from: model.StatusRejected, action: model.ActionApprove, actor: admin, expectErr: model.ErrInvalidTransition},
		{name: "pending cannot complete", from: model.StatusPending, action: model.ActionComplete, actor: admin, expectErr: model.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			row := booking(tt.from)
			statefulRepo(f, &row)

			if tt.expectErr == nil {
				f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, events ...event.Event) {
						require.Len(t, events, 1)
						assert.Equal(t, event.TypeStatusChanged, events[0].Type)
						assert.Equal(t, string(tt.from), events[0].From)
						assert.Equal(t, string(tt.expected), events[0].To)
						assert.Equal(t, tt.actor.UserID, events[0].Actor)
					})
			}

			res, err := f.svc.Transition(context.Background(), "b-1", tt.action, tt.actor)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Equal(t, tt.from, row.Status, "refused transition must not change the row")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, string(tt.expected), res.Status)
			assert.Equal(t, tt.expected, row.Status)
		})
	}
}

func TestBookingService_CancelThenApprove(t *testing.T) {
	f := setup(t)

	row := booking(model.StatusConfirmed)
	statefulRepo(f, &row)
	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(1)

	res, err := f.svc.Transition(context.Background(), "b-1", model.ActionCancel, owner)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusCancelled), res.Status)

	_, err = f.svc.Transition(context.Background(), "b-1", model.ActionApprove, admin)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	assert.Equal(t, model.StatusCancelled, row.Status)
}

func TestBookingService_TransitionLosesConcurrentUpdate(t *testing.T) {
	t.Run("row moved on", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusCancelled), nil),
		)

		_, err := f.svc.Transition(context.Background(), "b-1", model.ActionApprove, admin)
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("row vanished", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(model.StatusPending), nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil),
		)

		_, err := f.svc.Transition(context.Background(), "b-1", model.ActionApprove, admin)
		assert.ErrorIs(t, err, model.ErrBookingNotFound)
	})
}

func TestBookingService_TransitionNotFound(t *testing.T) {
	t.Run("no row", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Transition(context.Background(), "b-404", model.ActionCancel, owner)
		assert.ErrorIs(t, err, model.ErrBookingNotFound)
	})

	t.Run("id the column cannot hold", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, &pq.Error{Code: constant.PqErrorCodeInvalidTextRepresentation})

		_, err := f.svc.Transition(context.Background(), "not-a-uuid", model.ActionCancel, owner)
		assert.ErrorIs(t, err, model.ErrBookingNotFound)
	})
}

func TestBookingService_CompleteDue(t *testing.T) {
	t.Run("completes confirmed past checkout", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, mod map[string]any, filter gDto.FilterGroup) (int64, error) {
				_, args := filter.GetWhereClause()

				assert.Equal(t, string(model.StatusConfirmed), args["from_status"])
				assert.Equal(t, time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), args[model.FieldCheckOut])
				assert.Equal(t, string(model.StatusCompleted), mod[model.FieldStatus])
				assert.Equal(t, constant.RoleSystem, mod[constant.FieldModifiedBy])

				return 3, nil
			})

		n, err := f.svc.CompleteDue(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := setup(t)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))

		_, err := f.svc.CompleteDue(context.Background())
		assert.Error(t, err)
	})
}
