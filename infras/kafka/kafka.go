package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks -exclude_interfaces=writer

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"parking/config"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const writeTimeout = 10 * time.Second

// Message is a JSON encoded record. Messages sharing a Key land on the same partition.
type Message struct {
	Key     string
	Value   any
	Headers map[string]string
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("encode message %q: %w", m.Key, err)
	}

	headers := make([]kafkaGo.Header, 0, len(m.Headers))
	for _, name := range slices.Sorted(maps.Keys(m.Headers)) {
		headers = append(headers, kafkaGo.Header{Key: name, Value: []byte(m.Headers[name])})
	}

	return kafkaGo.Message{Topic: topic, Key: []byte(m.Key), Value: value, Headers: headers}, nil
}

// DecodeKafkaMessage is the consumer side of ToKafkaMessage.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("decode message %q: %w", msg.Key, err)
	}

	return value, nil
}

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Close() error
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkaGo.Message) error
	Close() error
}

type producer struct {
	writer writer
}

// New returns a producer for the configured brokers, or a client that drops messages when kafka is disabled.
func New(cfg *config.Config) Client {
	conf := cfg.Kafka
	if !conf.Enable || len(conf.Brokers) == 0 {
		log.Warn().Msg("kafka disabled, events will be dropped")

		return noopClient{}
	}

	transport := &kafkaGo.Transport{}
	if conf.SASL.Username != "" {
		transport.SASL = plain.Mechanism{Username: conf.SASL.Username, Password: conf.SASL.Password}
	}

	log.Info().Strs("brokers", conf.Brokers).Msg("kafka producer ready")

	return &producer{
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(conf.Brokers...),
			Balancer:               &kafkaGo.Hash{},
			Transport:              transport,
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafkaGo.RequireOne,
			WriteTimeout:           writeTimeout,
		},
	}
}

// SendMessages writes all messages or none; an encoding failure aborts before anything is sent.
func (p *producer) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	records := make([]kafkaGo.Message, len(messages))

	for i := range messages {
		record, err := messages[i].ToKafkaMessage(topic)
		if err != nil {
			return err
		}

		records[i] = record
	}

	if err := p.writer.WriteMessages(ctx, records...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("failed to write kafka messages")

		return fmt.Errorf("write %d messages to %s: %w", len(records), topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(records)).Msg("kafka messages written")

	return nil
}

func (p *producer) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}

	return nil
}

type noopClient struct{}

func (noopClient) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("kafka disabled, dropping messages")

	return nil
}

func (noopClient) Close() error {
	return nil
}
