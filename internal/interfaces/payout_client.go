package interfaces

import (
	"context"

	"github.com/sheikh-saqib/bulk-payouts/internal/models"
)

// PayoutClient submits a batch to the payout provider exactly once.
// Provider failures come back as a failed BatchResult, not as an error.
type PayoutClient interface {
	Submit(ctx context.Context, batch models.PayoutBatch) (models.BatchResult, error)
}
