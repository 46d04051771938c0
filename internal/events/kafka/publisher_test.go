package kafka

import (
	"context"
	"testing"

	"github.com/sheikh-saqib/bulk-payouts/internal/models/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRejectsUnencodableEvent(t *testing.T) {
	p := NewPublisher([]string{"127.0.0.1:1"})
	defer p.Close()

	err := p.Publish(context.Background(), "payout_batch_submitted", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode chan int")
}

func TestSubmittedEventIsKeyed(t *testing.T) {
	var ev any = events.PayoutBatchSubmitted{SenderBatchID: "b-7"}

	k, ok := ev.(keyed)
	require.True(t, ok)
	assert.Equal(t, "b-7", k.EventKey())
}
