package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	interfaces "github.com/sheikh-saqib/bulk-payouts/internal/interfaces"
)

// keyed events choose their own partition key
type keyed interface {
	EventKey() string
}

// Publisher writes JSON events to Kafka through one shared writer.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher returns a Publisher for brokers. The writer connects lazily on
// the first Publish, so an unreachable broker surfaces there, not here.
// Events with an EventKey land on the same partition. Close flushes the writer.
func NewPublisher(brokers []string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
	}
}

// Publish encodes event as JSON and writes it to topic, waiting for one ack.
func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %T: %w", event, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Value: data,
	}
	if k, ok := event.(keyed); ok {
		msg.Key = []byte(k.EventKey())
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
