package kafka_test

import (
	"context"
	"parking/config"
	"parking/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationEvent struct {
	Type          string  `json:"type"`
	ReservationID string  `json:"reservation_id"`
	Cost          float64 `json:"cost"`
}

func TestMessage_RoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:   "res-1",
		Value: reservationEvent{Type: "reservation.released", ReservationID: "res-1", Cost: 23},
	}

	kmsg, err := msg.ToKafkaMessage("parking.reservations")
	require.NoError(t, err)
	assert.Equal(t, "parking.reservations", kmsg.Topic)
	assert.Equal(t, []byte("res-1"), kmsg.Key)

	decoded, err := kafka.DecodeKafkaMessage[reservationEvent](kmsg)
	require.NoError(t, err)
	assert.Equal(t, "reservation.released", decoded.Type)
	assert.InDelta(t, 23.0, decoded.Cost, 0.001)
}

func TestMessage_Unmarshalable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage("topic")
	assert.Error(t, err)
}

func TestDecodeKafkaMessage_Invalid(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[reservationEvent](kafkaGo.Message{Value: []byte("{")})

	assert.Error(t, err)
}

func TestNew_DisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), "parking.reservations", kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())
}
