package event_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"homestay/config"
	"homestay/infras/kafka"
	kafkaMocks "homestay/infras/kafka/mocks"
	otelMocks "homestay/infras/otel/mocks"
	"homestay/internal/domains/booking/event"
	"homestay/internal/domains/booking/model"
)

func newPublisher(t *testing.T) (event.Publisher, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.BookingTopic = "bookings"

	return event.New(client, cfg, otelMocks.NewOtel()), client
}

func TestFromBooking(t *testing.T) {
	at := time.Date(2025, 1, 9, 8, 0, 0, 0, time.UTC)
	b := model.Booking{
		ID:         "b-1",
		PropertyID: "p-1",
		UserID:     "u-1",
		IntentID:   42,
		CheckIn:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		Status:     model.StatusPending,
	}

	e := event.FromBooking(event.TypeConfirmed, b, at)

	assert.Equal(t, event.TypeConfirmed, e.Type)
	assert.Equal(t, "2025-01-10", e.CheckIn)
	assert.Equal(t, "2025-01-12", e.CheckOut)
	assert.Equal(t, "pending", e.To)
	assert.Equal(t, int64(42), e.IntentID)
	assert.Equal(t, at, e.OccurredAt)
}

func TestPublish(t *testing.T) {
	t.Run("keys messages by property", func(t *testing.T) {
		p, client := newPublisher(t)

		client.EXPECT().
			SendMessages(gomock.Any(), "bookings", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
				assert.Len(t, msgs, 1)
				assert.Equal(t, "p-1", msgs[0].Key)

				return nil
			})

		p.Publish(context.Background(), event.Event{Type: event.TypeLostRace, PropertyID: "p-1"})
	})

	t.Run("swallows broker errors", func(t *testing.T) {
		p, client := newPublisher(t)

		client.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(errors.New("broker down"))

		assert.NotPanics(t, func() {
			p.Publish(context.Background(), event.Event{Type: event.TypeStatusChanged, PropertyID: "p-1"})
		})
	})

	t.Run("nothing to send", func(t *testing.T) {
		p, _ := newPublisher(t)

		p.Publish(context.Background())
	})
}
