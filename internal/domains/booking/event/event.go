package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"homestay/config"
	"homestay/infras/kafka"
	"homestay/infras/otel"
	"homestay/internal/domains/booking/model"
	"homestay/shared/constant"
)

type Type string

const (
	TypeConfirmed     Type = "booking.confirmed"
	TypeLostRace      Type = "booking.lost_race"
	TypeStatusChanged Type = "booking.status_changed"
)

// Event is the payload written to the booking topic, keyed by property id.
type Event struct {
	Type       Type      `json:"type"`
	BookingID  string    `json:"booking_id,omitempty"`
	IntentID   int64     `json:"intent_id,omitempty"`
	PropertyID string    `json:"property_id"`
	UserID     string    `json:"user_id,omitempty"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func FromBooking(t Type, b model.Booking, at time.Time) Event {
	return Event{
		Type:       t,
		BookingID:  b.ID,
		IntentID:   b.IntentID,
		PropertyID: b.PropertyID,
		UserID:     b.UserID,
		CheckIn:    b.CheckIn.Format(constant.CalendarFormat),
		CheckOut:   b.CheckOut.Format(constant.CalendarFormat),
		To:         string(b.Status),
		OccurredAt: at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func New(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.BookingTopic,
		otel:   otel,
	}
}

// Publish is best effort. The booking row is the source of truth, so a failed write is
// logged and not returned.
func (p *publisherImpl) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}

	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.Publish")
	defer scope.End()

	scope.SetAttribute("topic", p.topic)

	messages := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		messages = append(messages, kafka.Message{Key: e.PropertyID, Value: e})
	}

	if err := p.client.SendMessages(ctx, p.topic, messages...); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("topic", p.topic).Int("count", len(messages)).Msg("failed to publish booking events")
	}
}
