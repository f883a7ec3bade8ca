package kafka_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay/config"
	"homestay/infras/kafka"
)

type bookingEvent struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	m := kafka.Message{Key: "prop-1", Value: bookingEvent{BookingID: "b-1", Status: "pending"}}

	msg, err := m.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("prop-1"), msg.Key)
	assert.JSONEq(t, `{"booking_id":"b-1","status":"pending"}`, string(msg.Value))
}

func TestMessageUnmarshalable(t *testing.T) {
	m := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := m.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNewWithoutBrokersDiscards(t *testing.T) {
	client := kafka.New(&config.Config{})

	assert.NoError(t, client.SendMessages(context.Background(), "homestay.booking.events", kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())
}
