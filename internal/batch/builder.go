// Package batch turns parsed payee records into a single payout batch.
package batch

import (
	"errors"
	"fmt"

	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
	interfaces "github.com/sheikh-saqib/bulk-payouts/internal/interfaces"
	"github.com/sheikh-saqib/bulk-payouts/internal/models"
	"github.com/sheikh-saqib/bulk-payouts/internal/split"
	"github.com/shopspring/decimal"
)

const (
	// AmountField names the source column amounts come from, for error reports.
	AmountField = "payout"

	// MaxItems is the provider's limit on items in one payout batch.
	MaxItems = 15000
)

var errTooManyItems = errors.New("batch would exceed the item limit")

// Builder assembles PayoutBatch values. It does no I/O; the only state it
// touches is the identifier generator.
type Builder struct {
	ids      interfaces.IDGenerator
	cap      decimal.Decimal
	currency string
	maxItems int64
}

// Option customises a Builder.
type Option func(*Builder)

// WithCap sets the per-item ceiling. Non-positive values are ignored.
func WithCap(limit decimal.Decimal) Option {
	return func(b *Builder) {
		if limit.IsPositive() {
			b.cap = limit
		}
	}
}

// WithCurrency sets the currency code written on every item.
func WithCurrency(code string) Option {
	return func(b *Builder) {
		if code != "" {
			b.currency = code
		}
	}
}

// WithMaxItems sets how many items one batch may hold. Values < 1 are ignored.
func WithMaxItems(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxItems = int64(n)
		}
	}
}

// NewBuilder returns a Builder drawing batch and item ids from ids.
func NewBuilder(ids interfaces.IDGenerator, opts ...Option) *Builder {
	b := &Builder{
		ids:      ids,
		cap:      split.DefaultCap,
		currency: models.CurrencyUSD,
		maxItems: MaxItems,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build converts records, in order, into one batch. Amounts above the cap are
// split over several items; records with amount <= 0 produce none.
//
// Every amount is parsed and the item count checked before any id is drawn,
// so a malformed record, or a sheet that needs more than the item limit,
// fails the build with *errs.InputParseError and nothing else happens.
func (b *Builder) Build(records []models.InputRecord, subject string) (models.PayoutBatch, error) {
	amounts := make([]decimal.Decimal, len(records))
	var count int64
	for i, rec := range records {
		amount, err := ParseAmount(rec.Amount)
		if err != nil {
			return models.PayoutBatch{}, &errs.InputParseError{
				Row:   rec.Row,
				Field: AmountField,
				Value: rec.Amount,
				Err:   err,
			}
		}

		// counted, not split, so a huge amount never gets materialised
		count += split.Count(amount, b.cap)
		if count > b.maxItems {
			return models.PayoutBatch{}, &errs.InputParseError{
				Row:   rec.Row,
				Field: AmountField,
				Value: rec.Amount,
				Err:   fmt.Errorf("%w of %d", errTooManyItems, b.maxItems),
			}
		}
		amounts[i] = amount
	}

	items := make([]models.PayoutLineItem, 0, count)
	for i, rec := range records {
		for _, chunk := range split.Split(amounts[i], b.cap) {
			itemID, err := b.ids.Next()
			if err != nil {
				return models.PayoutBatch{}, fmt.Errorf("draw item id: %w", err)
			}
			items = append(items, models.PayoutLineItem{
				ItemID:        itemID,
				Recipient:     rec.Recipient,
				RecipientType: models.RecipientTypeEmail,
				Amount:        chunk,
				Currency:      b.currency,
				Note:          "For " + rec.Reference,
				Reference:     rec.Reference,
				SourceRow:     rec.Row,
			})
		}
	}

	batchID, err := b.ids.Next()
	if err != nil {
		return models.PayoutBatch{}, fmt.Errorf("draw batch id: %w", err)
	}

	return models.PayoutBatch{
		BatchID: batchID,
		Subject: subject,
		Items:   items,
	}, nil
}
