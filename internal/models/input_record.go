package models

// InputRecord is one row of the payee sheet, as read from the source file
type InputRecord struct {
	Row       int    // 1-based data row, header excluded
	Recipient string // e-mail column
	Amount    string // payout column, still locale formatted
	Reference string // PO-number column
}
