package batch

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errEmptyAmount     = errors.New("amount is empty")
	errMalformedAmount = errors.New("not a US formatted decimal number")

	// optional sign, optional $, digits with optional thousands grouping, optional fraction
	amountPattern = regexp.MustCompile(`^([+-]?)\$?(\d{1,3}(?:,\d{3})+|\d*)(\.\d+)?$`)
)

// ParseAmount reads a US formatted amount such as "1,250.50" or "$300".
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, errEmptyAmount
	}

	m := amountPattern.FindStringSubmatch(s)
	if m == nil || (m[2] == "" && m[3] == "") {
		return decimal.Zero, errMalformedAmount
	}

	whole := strings.ReplaceAll(m[2], ",", "")
	if whole == "" {
		whole = "0"
	}
	sign := m[1]
	if sign == "+" {
		sign = ""
	}
	return decimal.NewFromString(sign + whole + m[3])
}
