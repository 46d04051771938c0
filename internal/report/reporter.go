// Package report renders payout progress and outcomes as plain text lines.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/sheikh-saqib/bulk-payouts/internal/errs"
	"github.com/sheikh-saqib/bulk-payouts/internal/models"
)

// Reporter writes human readable status lines to an output sink.
// Write errors are ignored: the sink is a terminal, not a record.
type Reporter struct {
	w io.Writer
}

// New returns a Reporter writing to w, usually os.Stdout.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Items prints one line per line item, in batch order.
func (r *Reporter) Items(batch models.PayoutBatch) {
	for _, item := range batch.Items {
		fmt.Fprintf(r.w, "Sending payment to %s of amount %s for PO: %s\n",
			item.Recipient, item.Amount.StringFixed(2), item.Reference)
	}
}

// Result prints the outcome of a submission.
func (r *Reporter) Result(result models.BatchResult) {
	if result.Succeeded {
		fmt.Fprintf(r.w, "Payout Batch With ID: %s\n", result.BatchID)
		if result.BatchStatus != "" {
			fmt.Fprintf(r.w, "Batch status: %s\n", result.BatchStatus)
		}
		fmt.Fprintf(r.w, "Payout Batch Create\n%s\n", result.RawRequest)
		fmt.Fprintf(r.w, "Response\n%s\n", result.RawResponse)
		return
	}

	fmt.Fprintf(r.w, "Payout failed due to: %s\n", result.ErrorMessage)
	if result.FailureKind != models.FailureNone {
		fmt.Fprintf(r.w, "Failure kind: %s\n", result.FailureKind)
	}
	fmt.Fprintf(r.w, "\nRequest\n%s\n", result.RawRequest)
	if result.RawResponse != "" {
		fmt.Fprintf(r.w, "\nResponse\n%s\n", result.RawResponse)
	}
}

// NothingToPay prints the notice for a batch without items.
func (r *Reporter) NothingToPay(batch models.PayoutBatch) {
	fmt.Fprintf(r.w, "Nothing to pay: no row has a positive payout, batch %s was not sent\n", batch.BatchID)
}

// Error prints a fatal error that stopped the run before submission.
func (r *Reporter) Error(err error) {
	switch {
	case errors.Is(err, errs.ErrConfiguration):
		fmt.Fprintf(r.w, "Configuration error: %v\n", err)
	case errors.Is(err, errs.ErrInputParse):
		fmt.Fprintf(r.w, "Input error: %v\n", err)
	default:
		fmt.Fprintf(r.w, "Error: %v\n", err)
	}
}
