// Package disburse runs one payout: build the batch, submit it, announce
// and report the outcome.
package disburse

import (
	"context"
	"time"

	"github.com/sheikh-saqib/bulk-payouts/internal/batch"
	interfaces "github.com/sheikh-saqib/bulk-payouts/internal/interfaces"
	"github.com/sheikh-saqib/bulk-payouts/internal/models"
	"github.com/sheikh-saqib/bulk-payouts/internal/models/events"
	"go.uber.org/zap"
)

// Service wires the builder, the provider client and the output sinks
// for a single sequential run.
type Service struct {
	builder   *batch.Builder            // turns sheet rows into one batch
	client    interfaces.PayoutClient   // sends the batch, PayPal or a fake
	publisher interfaces.EventPublisher // announces the outcome, may be nil
	reporter  interfaces.Reporter       // operator facing status lines
	logger    *zap.Logger               // diagnostics, never the status lines

	subject string           // e-mail subject shown to recipients
	mode    string           // live or sandbox, copied onto events
	topic   string           // where events are published
	now     func() time.Time // clock, replaced in tests
}

// Options carries the per-run settings of a Service.
type Options struct {
	Subject string // e-mail subject shown to recipients
	Mode    string // live or sandbox, recorded on events
	Topic   string // event topic
}

// NewService is a constructor function that creates a Service.
// publisher may be nil to skip events; a nil logger discards diagnostics.
func NewService(
	builder *batch.Builder,
	client interfaces.PayoutClient,
	publisher interfaces.EventPublisher,
	reporter interfaces.Reporter,
	logger *zap.Logger,
	opts Options,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		builder:   builder,
		client:    client,
		publisher: publisher,
		reporter:  reporter,
		logger:    logger,
		subject:   opts.Subject,
		mode:      opts.Mode,
		topic:     opts.Topic,
		now:       time.Now,
	}
}

// Run builds one batch from records and submits it once.
//
// Input and local errors are returned before anything is sent. A provider
// failure is not an error: it comes back as a BatchResult with Succeeded
// false, already reported.
func (s *Service) Run(ctx context.Context, records []models.InputRecord) (models.BatchResult, error) {
	// Build the whole batch first; a bad row stops the run here
	b, err := s.builder.Build(records, s.subject)
	if err != nil {
		return models.BatchResult{}, err
	}

	// Every row was empty or non-positive: there is nothing to send,
	// and PayPal would reject a batch without items anyway
	if len(b.Items) == 0 {
		s.logger.Info("payout batch empty, not submitted",
			zap.String("batch_id", b.BatchID),
			zap.Int("records", len(records)))
		s.reporter.NothingToPay(b)
		return models.BatchResult{
			BatchID:       b.BatchID,
			SenderBatchID: b.BatchID,
			Succeeded:     true,
			Skipped:       true,
		}, nil
	}

	// One line per item before sending, so the operator sees what goes out
	s.reporter.Items(b)
	s.logger.Info("payout batch built",
		zap.String("batch_id", b.BatchID),
		zap.Int("records", len(records)),
		zap.Int("items", len(b.Items)),
		zap.String("total", b.Total().StringFixed(2)))

	// Exactly one attempt; provider failures come back inside result
	result, err := s.client.Submit(ctx, b)
	if err != nil {
		return models.BatchResult{}, err
	}

	if result.Succeeded {
		s.logger.Info("payout batch submitted",
			zap.String("batch_id", result.BatchID),
			zap.String("batch_status", result.BatchStatus))
	} else {
		s.logger.Warn("payout batch failed",
			zap.String("batch_id", result.BatchID),
			zap.String("failure_kind", string(result.FailureKind)),
			zap.String("error", result.ErrorMessage))
	}

	s.announce(ctx, b, result)
	s.reporter.Result(result)

	return result, nil
}

// announce publishes the outcome. A failed publish is logged and otherwise
// ignored: the batch has already been sent.
func (s *Service) announce(ctx context.Context, b models.PayoutBatch, result models.BatchResult) {
	if s.publisher == nil {
		return
	}

	// all items share one currency; USD when the builder was not told otherwise
	currency := models.CurrencyUSD
	if len(b.Items) > 0 {
		currency = b.Items[0].Currency
	}

	event := events.PayoutBatchSubmitted{
		BatchID:       result.BatchID, // provider id when accepted
		SenderBatchID: b.BatchID,      // our id, always set
		Mode:          s.mode,
		ItemCount:     len(b.Items),
		Total:         b.Total(),
		Currency:      currency,
		Succeeded:     result.Succeeded,
		FailureKind:   string(result.FailureKind),
		ErrorMessage:  result.ErrorMessage,
		OccurredAt:    s.now().UTC(),
	}

	if err := s.publisher.Publish(ctx, s.topic, event); err != nil {
		s.logger.Error("publish payout event",
			zap.String("topic", s.topic),
			zap.String("batch_id", result.BatchID),
			zap.Error(err))
	}
}
