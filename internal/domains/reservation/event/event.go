package event

//go:generate go run go.uber.org/mock/mockgen -source=./event.go -destination=../mocks/event_mock.go -package=mocks

import (
	"context"
	"fmt"
	"parking/config"
	"parking/infras/kafka"
	"parking/infras/otel"
	"parking/internal/domains/reservation/model"
	"parking/shared/constant"
	"parking/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	TypeBooked   = "reservation.booked"
	TypeReleased = "reservation.released"

	HeaderType = "event-type"
)

// Event is the payload written to the reservation topic, keyed by lot id.
type Event struct {
	Type          string     `json:"type"`
	ReservationID string     `json:"reservation_id"`
	UserID        string     `json:"user_id"`
	LotID         string     `json:"lot_id"`
	SpotID        string     `json:"spot_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Hours         float64    `json:"hours,omitempty"`
	Cost          float64    `json:"cost"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func New(eventType string, reservation model.Reservation, hours float64) Event {
	return Event{
		Type:          eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		LotID:         reservation.LotID.String,
		SpotID:        reservation.SpotID.String,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime.Ptr(),
		Hours:         hours,
		Cost:          reservation.Cost,
		OccurredAt:    timezone.Now(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type publisherImpl struct {
	client kafka.Client
	topic  string
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		topic:  cfg.Kafka.Topics.Reservation,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, evt Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{
		"event.type":     evt.Type,
		"reservation.id": evt.ReservationID,
	})

	if err = p.client.SendMessages(ctx, p.topic, kafka.Message{
		Key:     evt.LotID,
		Value:   evt,
		Headers: map[string]string{HeaderType: evt.Type},
	}); err != nil {
		log.Error().Err(err).Str("type", evt.Type).Str("reservation", evt.ReservationID).Msg("failed to publish reservation event")

		return fmt.Errorf("failed to publish %s: %w", evt.Type, err)
	}

	return nil
}
