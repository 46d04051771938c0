package paypal

import "github.com/sheikh-saqib/bulk-payouts/internal/models"

type payoutRequest struct {
	SenderBatchHeader senderBatchHeader `json:"sender_batch_header"`
	Items             []payoutItem      `json:"items"`
}

type senderBatchHeader struct {
	SenderBatchID string `json:"sender_batch_id"`
	EmailSubject  string `json:"email_subject,omitempty"`
}

type payoutItem struct {
	RecipientType string   `json:"recipient_type"`
	Amount        currency `json:"amount"`
	Note          string   `json:"note,omitempty"`
	Receiver      string   `json:"receiver"`
	SenderItemID  string   `json:"sender_item_id"`
}

type currency struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

type payoutResponse struct {
	BatchHeader struct {
		PayoutBatchID string `json:"payout_batch_id"`
		BatchStatus   string `json:"batch_status"`
	} `json:"batch_header"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// errorResponse covers both the REST error body (name/message) and the
// OAuth2 error body (error/error_description).
type errorResponse struct {
	Name             string        `json:"name"`
	Message          string        `json:"message"`
	DebugID          string        `json:"debug_id"`
	Details          []errorDetail `json:"details"`
	Error            string        `json:"error"`
	ErrorDescription string        `json:"error_description"`
}

type errorDetail struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

func toPayoutRequest(batch models.PayoutBatch) payoutRequest {
	items := make([]payoutItem, len(batch.Items))
	for i, item := range batch.Items {
		items[i] = payoutItem{
			RecipientType: item.RecipientType,
			Amount: currency{
				Value:    item.Amount.StringFixed(2),
				Currency: item.Currency,
			},
			Note:         item.Note,
			Receiver:     item.Recipient,
			SenderItemID: item.ItemID,
		}
	}
	return payoutRequest{
		SenderBatchHeader: senderBatchHeader{
			SenderBatchID: batch.BatchID,
			EmailSubject:  batch.Subject,
		},
		Items: items,
	}
}
