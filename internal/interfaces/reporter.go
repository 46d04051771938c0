package interfaces

import "github.com/sheikh-saqib/bulk-payouts/internal/models"

// Reporter renders run progress to the operator
type Reporter interface {
	Items(batch models.PayoutBatch)
	Result(result models.BatchResult)
	NothingToPay(batch models.PayoutBatch)
}
