// Package split breaks payout amounts into chunks the provider accepts.
package split

import "github.com/shopspring/decimal"

// Places is the number of decimal places every amount is kept at.
const Places = 2

// DefaultCap is the largest amount a single payout item may carry.
var DefaultCap = decimal.RequireFromString("10000.00")

// RoundHalfUp rounds amount to two decimal places, halves away from zero.
func RoundHalfUp(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// Count returns how many chunks Split(amount, limit) yields, without
// building them. It panics if limit is not positive.
func Count(amount, limit decimal.Decimal) int64 {
	if !limit.IsPositive() {
		panic("split: limit must be positive")
	}

	rounded := RoundHalfUp(amount)
	if !rounded.IsPositive() {
		return 0
	}
	return rounded.Div(limit).Ceil().IntPart()
}

// Split rounds amount and returns it as chunks of at most limit: as many full
// limits as fit, then the remainder. Amounts <= 0 yield an empty slice.
// It panics if limit is not positive.
func Split(amount, limit decimal.Decimal) []decimal.Decimal {
	if !limit.IsPositive() {
		panic("split: limit must be positive")
	}

	remaining := RoundHalfUp(amount)
	if !remaining.IsPositive() {
		return []decimal.Decimal{}
	}

	var chunks []decimal.Decimal
	for remaining.IsPositive() {
		chunk := decimal.Min(remaining, limit)
		chunks = append(chunks, chunk)
		remaining = RoundHalfUp(remaining.Sub(chunk))
	}
	return chunks
}
