package models

import "github.com/shopspring/decimal"

const (
	CurrencyUSD        = "USD"
	RecipientTypeEmail = "EMAIL"
)

// PayoutLineItem is a single disbursement instruction inside a batch.
// Amount never exceeds the provider's per-item cap.
type PayoutLineItem struct {
	ItemID        string          // sender item id, unique inside the batch
	Recipient     string          // receiver e-mail
	RecipientType string          // always EMAIL for sheet driven payouts
	Amount        decimal.Decimal // two decimal places, 0 < amount <= cap
	Currency      string
	Note          string
	Reference     string // PO number the note was derived from
	SourceRow     int    // InputRecord.Row the item was split from
}

// PayoutBatch is the single submission sent to the provider.
// It is built once and treated as read-only afterwards.
type PayoutBatch struct {
	BatchID string
	Subject string
	Items   []PayoutLineItem
}

// Total returns the sum of all item amounts.
func (b PayoutBatch) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.Amount)
	}
	return total
}
