package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayoutBatchSubmitted struct {
	BatchID       string          `json:"batch_id"`
	SenderBatchID string          `json:"sender_batch_id"`
	Mode          string          `json:"mode"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	Succeeded     bool            `json:"succeeded"`
	FailureKind   string          `json:"failure_kind,omitempty"`
	ErrorMessage  string          `json:"error_message,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// EventKey partitions events by sender batch id.
func (e PayoutBatchSubmitted) EventKey() string {
	return e.SenderBatchID
}
