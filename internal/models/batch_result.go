package models

// FailureKind classifies why a submission did not succeed
type FailureKind string

const (
	FailureNone           FailureKind = ""
	FailureAuthentication FailureKind = "authentication"
	FailureRejected       FailureKind = "rejected"
	FailureTransport      FailureKind = "transport"
)

// BatchResult is the outcome of one submission attempt.
// ErrorMessage is empty exactly when Succeeded is true.
type BatchResult struct {
	BatchID       string // provider batch id on success, sender batch id otherwise
	SenderBatchID string
	BatchStatus   string // provider batch_status, e.g. PENDING
	StatusCode    int    // HTTP status of the last provider call, 0 on transport failure
	RawRequest    string
	RawResponse   string
	Succeeded     bool
	Skipped       bool // nothing to pay, so nothing was sent
	ErrorMessage  string
	FailureKind   FailureKind
}
