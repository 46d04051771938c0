// Package memory holds events in process when no broker is configured.
package memory

import (
	"context"
	"sync"

	interfaces "github.com/sheikh-saqib/bulk-payouts/internal/interfaces"
)

// Message is one event captured by the Publisher.
type Message struct {
	Topic string
	Event any
}

// Publisher is an in-memory EventPublisher. It keeps every published event
// for the life of the process, which is the life of one payout run.
type Publisher struct {
	mu       sync.Mutex
	messages []Message
}

// NewPublisher returns an empty Publisher, safe for concurrent use.
func NewPublisher() *Publisher {
	return &Publisher{
		// non-nil so Messages on an idle publisher still ranges over a slice
		messages: make([]Message, 0),
	}
}

// Publish records the event. It only fails when ctx is already done.
func (p *Publisher) Publish(ctx context.Context, topic string, event any) error {
	// a cancelled run must not look like it published
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// the event is stored as given; callers pass values, not pointers
	p.messages = append(p.messages, Message{Topic: topic, Event: event})
	return nil
}

// Messages returns a copy of the published events, optionally filtered by topic.
func (p *Publisher) Messages(topic string) []Message {
	p.mu.Lock()
	defer p.mu.Unlock()

	// a fresh slice, so callers can't append into the publisher's backing array
	var result []Message
	for _, m := range p.messages {
		// empty topic means all topics
		if topic == "" || m.Topic == topic {
			result = append(result, m)
		}
	}
	return result
}

// Compile-time check: ensure Publisher implements EventPublisher
var _ interfaces.EventPublisher = (*Publisher)(nil)
